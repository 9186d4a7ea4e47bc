package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/auth"
	"github.com/condosys/condo-management/internal/permission"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(ctx context.Context, p *permission.Permission) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PermissionRepository) GetByID(ctx context.Context, id int64) (*permission.Permission, error) {
	var p permission.Permission
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PermissionRepository) GetByTuple(ctx context.Context, groupID, functionID int64, action auth.Action) (*permission.Permission, error) {
	var p permission.Permission
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND function_id = ? AND action = ?", groupID, functionID, string(action)).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PermissionRepository) List(ctx context.Context, groupID int64, limit, offset int) ([]permission.Permission, error) {
	q := r.db.WithContext(ctx).Order("group_id ASC, function_id ASC, action ASC").Limit(limit).Offset(offset)
	if groupID > 0 {
		q = q.Where("group_id = ?", groupID)
	}

	var perms []permission.Permission
	err := q.Find(&perms).Error
	return perms, err
}

func (r *PermissionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&permission.Permission{}, id).Error
}
