package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/visitor"
)

type VisitorRepository struct {
	db *gorm.DB
}

func NewVisitorRepository(db *gorm.DB) *VisitorRepository {
	return &VisitorRepository{db: db}
}

func (r *VisitorRepository) Create(ctx context.Context, v *visitor.Visitor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VisitorRepository) GetByID(ctx context.Context, id int64) (*visitor.Visitor, error) {
	var v visitor.Visitor
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VisitorRepository) List(ctx context.Context, unitID int64, onlyInside bool, limit, offset int) ([]visitor.Visitor, error) {
	q := r.db.WithContext(ctx).Order("entry_time DESC").Limit(limit).Offset(offset)
	if unitID > 0 {
		q = q.Where("unit_id = ?", unitID)
	}
	if onlyInside {
		q = q.Where("exit_time IS NULL")
	}

	var visitors []visitor.Visitor
	err := q.Find(&visitors).Error
	return visitors, err
}

func (r *VisitorRepository) Update(ctx context.Context, v *visitor.Visitor) error {
	return r.db.WithContext(ctx).Save(v).Error
}
