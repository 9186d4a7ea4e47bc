package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/budget"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	var b budget.Budget
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) List(ctx context.Context, status budget.Status, limit, offset int) ([]budget.Budget, error) {
	q := r.db.WithContext(ctx).Order("requested_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var budgets []budget.Budget
	err := q.Find(&budgets).Error
	return budgets, err
}

func (r *BudgetRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *BudgetRepository) UpdateTx(tx *gorm.DB, b *budget.Budget) error {
	return tx.Save(b).Error
}
