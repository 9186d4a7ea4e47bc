package user

import (
	"strings"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/core/common/validation"
)

type CreateUserDTO struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
	GroupID  int64   `json:"group_id"`
}

func (d *CreateUserDTO) Validate() error {
	v := validation.New()
	v.Required("username", d.Username)
	v.MaxLength("username", d.Username, 100)
	v.Required("password", d.Password)
	v.MinLength("password", d.Password, 8)
	v.Required("full_name", d.FullName)
	v.Email("email", d.Email)
	v.Positive("group_id", d.GroupID)
	if err := v.Err(); err != nil {
		return err
	}
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	return nil
}

type UpdateUserDTO struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	GroupID  *int64  `json:"group_id"`
	IsActive *bool   `json:"is_active"`
}

func (d *UpdateUserDTO) Validate() error {
	v := validation.New()
	if d.Email != nil {
		v.Email("email", *d.Email)
	}
	if d.FullName != nil {
		v.Required("full_name", *d.FullName)
	}
	if d.GroupID != nil {
		v.Positive("group_id", *d.GroupID)
	}
	return v.Err()
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (d *ChangePasswordDTO) Validate() error {
	if d.CurrentPassword == "" {
		return internal.NewValidationError("current_password is required", internal.ErrCodeValidationFailed)
	}
	if len(d.NewPassword) < 8 {
		return internal.NewValidationError("new_password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}
