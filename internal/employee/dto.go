package employee

import (
	"time"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/core/common/validation"
)

const dateLayout = "2006-01-02"

type CreateEmployeeDTO struct {
	Name        string  `json:"name"`
	CPF         string  `json:"cpf"`
	Role        string  `json:"role"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	HireDate    string  `json:"hire_date"`
	SalaryCents *int64  `json:"salary_cents"`
}

func (d *CreateEmployeeDTO) Validate() error {
	v := validation.New()
	v.Required("name", d.Name)
	v.Required("cpf", d.CPF)
	v.MaxLength("cpf", d.CPF, 14)
	v.Required("role", d.Role)
	v.Required("hire_date", d.HireDate)
	if d.SalaryCents != nil {
		v.NonNegative("salary_cents", *d.SalaryCents)
	}
	if err := v.Err(); err != nil {
		return err
	}
	if _, err := time.Parse(dateLayout, d.HireDate); err != nil {
		return internal.NewValidationError("hire_date must be yyyy-mm-dd", internal.ErrCodeInvalidDate)
	}
	return nil
}

func (d *CreateEmployeeDTO) HireDateValue() time.Time {
	t, _ := time.Parse(dateLayout, d.HireDate)
	return t
}

type UpdateEmployeeDTO struct {
	Name            *string `json:"name"`
	Role            *string `json:"role"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	Address         *string `json:"address"`
	TerminationDate *string `json:"termination_date"`
	SalaryCents     *int64  `json:"salary_cents"`
	IsActive        *bool   `json:"is_active"`
}

func (d *UpdateEmployeeDTO) Validate() error {
	v := validation.New()
	if d.Name != nil {
		v.Required("name", *d.Name)
	}
	if d.Role != nil {
		v.Required("role", *d.Role)
	}
	if d.SalaryCents != nil {
		v.NonNegative("salary_cents", *d.SalaryCents)
	}
	if err := v.Err(); err != nil {
		return err
	}
	if d.TerminationDate != nil && *d.TerminationDate != "" {
		if _, err := time.Parse(dateLayout, *d.TerminationDate); err != nil {
			return internal.NewValidationError("termination_date must be yyyy-mm-dd", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (d *UpdateEmployeeDTO) TerminationDateValue() *time.Time {
	if d.TerminationDate == nil || *d.TerminationDate == "" {
		return nil
	}
	t, _ := time.Parse(dateLayout, *d.TerminationDate)
	return &t
}
