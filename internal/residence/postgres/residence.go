package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/residence"
)

type ResidenceRepository struct {
	db *gorm.DB
}

func NewResidenceRepository(db *gorm.DB) *ResidenceRepository {
	return &ResidenceRepository{db: db}
}

func (r *ResidenceRepository) CreateCondominium(ctx context.Context, c *residence.Condominium) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ResidenceRepository) GetCondominium(ctx context.Context, id int64) (*residence.Condominium, error) {
	var c residence.Condominium
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ResidenceRepository) ListCondominiums(ctx context.Context, limit, offset int) ([]residence.Condominium, error) {
	var items []residence.Condominium
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *ResidenceRepository) CreateUnit(ctx context.Context, u *residence.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *ResidenceRepository) GetUnit(ctx context.Context, id int64) (*residence.Unit, error) {
	var u residence.Unit
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *ResidenceRepository) ListUnits(ctx context.Context, condominiumID int64, limit, offset int) ([]residence.Unit, error) {
	q := r.db.WithContext(ctx).Order("block ASC, number ASC").Limit(limit).Offset(offset)
	if condominiumID > 0 {
		q = q.Where("condominium_id = ?", condominiumID)
	}

	var units []residence.Unit
	err := q.Find(&units).Error
	return units, err
}

func (r *ResidenceRepository) CreateResident(ctx context.Context, res *residence.Resident) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResidenceRepository) GetResident(ctx context.Context, id int64) (*residence.Resident, error) {
	var res residence.Resident
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResidenceRepository) ListResidents(ctx context.Context, unitID int64, limit, offset int) ([]residence.Resident, error) {
	q := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset)
	if unitID > 0 {
		q = q.Where("unit_id = ?", unitID)
	}

	var residents []residence.Resident
	err := q.Find(&residents).Error
	return residents, err
}
