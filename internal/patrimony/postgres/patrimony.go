package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/patrimony"
)

type PatrimonyRepository struct {
	db *gorm.DB
}

func NewPatrimonyRepository(db *gorm.DB) *PatrimonyRepository {
	return &PatrimonyRepository{db: db}
}

func (r *PatrimonyRepository) Create(ctx context.Context, p *patrimony.Patrimony) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatrimonyRepository) GetByID(ctx context.Context, id int64) (*patrimony.Patrimony, error) {
	var p patrimony.Patrimony
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatrimonyRepository) List(ctx context.Context, category string, limit, offset int) ([]patrimony.Patrimony, error) {
	q := r.db.WithContext(ctx).Order("name ASC").Limit(limit).Offset(offset)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var items []patrimony.Patrimony
	err := q.Find(&items).Error
	return items, err
}

func (r *PatrimonyRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *PatrimonyRepository) UpdateTx(tx *gorm.DB, p *patrimony.Patrimony) error {
	return tx.Save(p).Error
}

func (r *PatrimonyRepository) DeleteTx(tx *gorm.DB, id int64) error {
	return tx.Delete(&patrimony.Patrimony{}, id).Error
}
