package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/provider"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Create(ctx context.Context, p *provider.Provider) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int64) (*provider.Provider, error) {
	var p provider.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepository) List(ctx context.Context, serviceType string, limit, offset int) ([]provider.Provider, error) {
	q := r.db.WithContext(ctx).Order("name ASC").Limit(limit).Offset(offset)
	if serviceType != "" {
		q = q.Where("service_type = ?", serviceType)
	}

	var providers []provider.Provider
	err := q.Find(&providers).Error
	return providers, err
}

func (r *ProviderRepository) Update(ctx context.Context, p *provider.Provider) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProviderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&provider.Provider{}, id).Error
}
