package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/function"
)

type FunctionRepository struct {
	db *gorm.DB
}

func NewFunctionRepository(db *gorm.DB) *FunctionRepository {
	return &FunctionRepository{db: db}
}

func (r *FunctionRepository) Create(ctx context.Context, f *function.Function) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FunctionRepository) GetByID(ctx context.Context, id int64) (*function.Function, error) {
	var f function.Function
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FunctionRepository) GetByCode(ctx context.Context, code string) (*function.Function, error) {
	var f function.Function
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FunctionRepository) List(ctx context.Context, module string, limit, offset int) ([]function.Function, error) {
	q := r.db.WithContext(ctx).Order("module ASC, code ASC").Limit(limit).Offset(offset)
	if module != "" {
		q = q.Where("module = ?", module)
	}

	var functions []function.Function
	err := q.Find(&functions).Error
	return functions, err
}

func (r *FunctionRepository) Update(ctx context.Context, f *function.Function) error {
	return r.db.WithContext(ctx).Save(f).Error
}
