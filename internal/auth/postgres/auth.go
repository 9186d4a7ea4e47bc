package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/auth"
)

// AuthRepository backs both the login flow and the permission engine.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

type credentialsRow struct {
	ID           int64
	PasswordHash string
	IsActive     bool
}

func (r *AuthRepository) GetCredentials(ctx context.Context, username string) (string, int64, bool, error) {
	var row credentialsRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, password_hash, is_active").
		Where("username = ?", username).
		Take(&row).Error
	if err != nil {
		return "", 0, false, err
	}
	return row.PasswordHash, row.ID, row.IsActive, nil
}

func (r *AuthRepository) GetSessionUser(ctx context.Context, userID int64) (*auth.User, error) {
	var user auth.User
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, username, full_name, group_id, is_active").
		Where("id = ?", userID).
		Take(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

// HasPermission checks for a permission row matching the triple, requiring the
// group and the function to both be active.
func (r *AuthRepository) HasPermission(ctx context.Context, groupID int64, functionCode string, action auth.Action) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN functions ON functions.id = permissions.function_id").
		Joins("JOIN groups ON groups.id = permissions.group_id").
		Where("permissions.group_id = ?", groupID).
		Where("functions.code = ?", functionCode).
		Where("permissions.action = ?", string(action)).
		Where("functions.is_active = ?", true).
		Where("groups.is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
