package patrimony

import (
	"time"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/core/common/validation"
)

const dateLayout = "2006-01-02"

type CreatePatrimonyDTO struct {
	Name                  string  `json:"name"`
	Description           *string `json:"description"`
	Category              string  `json:"category"`
	Location              *string `json:"location"`
	AcquisitionDate       *string `json:"acquisition_date"`
	AcquisitionValueCents *int64  `json:"acquisition_value_cents"`
	CurrentValueCents     *int64  `json:"current_value_cents"`
	Condition             *string `json:"condition"`
	SerialNumber          *string `json:"serial_number"`
	Notes                 *string `json:"notes"`
}

func (d *CreatePatrimonyDTO) Validate() error {
	v := validation.New()
	v.Required("name", d.Name)
	v.Required("category", d.Category)
	if d.AcquisitionValueCents != nil {
		v.NonNegative("acquisition_value_cents", *d.AcquisitionValueCents)
	}
	if d.CurrentValueCents != nil {
		v.NonNegative("current_value_cents", *d.CurrentValueCents)
	}
	if err := v.Err(); err != nil {
		return err
	}
	if d.AcquisitionDate != nil && *d.AcquisitionDate != "" {
		if _, err := time.Parse(dateLayout, *d.AcquisitionDate); err != nil {
			return internal.NewValidationError("acquisition_date must be yyyy-mm-dd", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (d *CreatePatrimonyDTO) AcquisitionDateValue() *time.Time {
	if d.AcquisitionDate == nil || *d.AcquisitionDate == "" {
		return nil
	}
	t, _ := time.Parse(dateLayout, *d.AcquisitionDate)
	return &t
}

type UpdatePatrimonyDTO struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Category          *string `json:"category"`
	Location          *string `json:"location"`
	CurrentValueCents *int64  `json:"current_value_cents"`
	Condition         *string `json:"condition"`
	Notes             *string `json:"notes"`
	IsActive          *bool   `json:"is_active"`
}

func (d *UpdatePatrimonyDTO) Validate() error {
	v := validation.New()
	if d.Name != nil {
		v.Required("name", *d.Name)
	}
	if d.Category != nil {
		v.Required("category", *d.Category)
	}
	if d.CurrentValueCents != nil {
		v.NonNegative("current_value_cents", *d.CurrentValueCents)
	}
	return v.Err()
}
