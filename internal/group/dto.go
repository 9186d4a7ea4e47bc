package group

import "github.com/condosys/condo-management/internal/core/common/validation"

type CreateGroupDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (d *CreateGroupDTO) Validate() error {
	v := validation.New()
	v.Required("name", d.Name)
	v.MaxLength("name", d.Name, 100)
	return v.Err()
}

type UpdateGroupDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (d *UpdateGroupDTO) Validate() error {
	v := validation.New()
	if d.Name != nil {
		v.Required("name", *d.Name)
		v.MaxLength("name", *d.Name, 100)
	}
	return v.Err()
}
