package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/group"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, g *group.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*group.Group, error) {
	var g group.Group
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) List(ctx context.Context, limit, offset int) ([]group.Group, error) {
	var groups []group.Group
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Update(ctx context.Context, g *group.Group) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM permissions WHERE group_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&group.Group{}, id).Error
	})
}

func (r *GroupRepository) CountUsers(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
