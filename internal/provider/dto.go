package provider

import "github.com/condosys/condo-management/internal/core/common/validation"

type CreateProviderDTO struct {
	Name          string  `json:"name"`
	CNPJCPF       *string `json:"cnpj_cpf"`
	ServiceType   string  `json:"service_type"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
}

func (d *CreateProviderDTO) Validate() error {
	v := validation.New()
	v.Required("name", d.Name)
	v.Required("service_type", d.ServiceType)
	if d.Email != nil {
		v.Email("email", *d.Email)
	}
	return v.Err()
}

type UpdateProviderDTO struct {
	Name          *string `json:"name"`
	ServiceType   *string `json:"service_type"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

func (d *UpdateProviderDTO) Validate() error {
	v := validation.New()
	if d.Name != nil {
		v.Required("name", *d.Name)
	}
	if d.ServiceType != nil {
		v.Required("service_type", *d.ServiceType)
	}
	if d.Email != nil {
		v.Email("email", *d.Email)
	}
	return v.Err()
}
