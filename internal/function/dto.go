package function

import "github.com/condosys/condo-management/internal/core/common/validation"

type CreateFunctionDTO struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description"`
	Module      string  `json:"module"`
}

func (d *CreateFunctionDTO) Validate() error {
	v := validation.New()
	v.Required("name", d.Name)
	v.MaxLength("name", d.Name, 100)
	v.Required("code", d.Code)
	v.MaxLength("code", d.Code, 50)
	v.Required("module", d.Module)
	v.MaxLength("module", d.Module, 50)
	return v.Err()
}
