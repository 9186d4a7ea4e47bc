package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/employee"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]employee.Employee, error) {
	q := r.db.WithContext(ctx).Order("name ASC").Limit(limit).Offset(offset)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var employees []employee.Employee
	err := q.Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *EmployeeRepository) UpdateTx(tx *gorm.DB, e *employee.Employee) error {
	return tx.Save(e).Error
}

func (r *EmployeeRepository) DeleteTx(tx *gorm.DB, id int64) error {
	return tx.Delete(&employee.Employee{}, id).Error
}
