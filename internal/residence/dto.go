package residence

import (
	"time"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/core/common/validation"
)

const dateLayout = "2006-01-02"

type CreateCondominiumDTO struct {
	Name    string  `json:"name"`
	CNPJ    *string `json:"cnpj"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

func (d *CreateCondominiumDTO) Validate() error {
	v := validation.New()
	v.Required("name", d.Name)
	v.Required("address", d.Address)
	if d.Email != nil {
		v.Email("email", *d.Email)
	}
	return v.Err()
}

type CreateUnitDTO struct {
	CondominiumID int64   `json:"condominium_id"`
	Block         *string `json:"block"`
	Number        string  `json:"number"`
	Floor         *int64  `json:"floor"`
	Type          *string `json:"type"`
}

func (d *CreateUnitDTO) Validate() error {
	v := validation.New()
	v.Positive("condominium_id", d.CondominiumID)
	v.Required("number", d.Number)
	return v.Err()
}

type CreateResidentDTO struct {
	UserID       int64   `json:"user_id"`
	UnitID       int64   `json:"unit_id"`
	Relationship string  `json:"relationship"`
	IsOwner      bool    `json:"is_owner"`
	IsPrimary    bool    `json:"is_primary"`
	MoveInDate   *string `json:"move_in_date"`
}

func (d *CreateResidentDTO) Validate() error {
	v := validation.New()
	v.Positive("user_id", d.UserID)
	v.Positive("unit_id", d.UnitID)
	v.Required("relationship", d.Relationship)
	if err := v.Err(); err != nil {
		return err
	}
	if d.MoveInDate != nil && *d.MoveInDate != "" {
		if _, err := time.Parse(dateLayout, *d.MoveInDate); err != nil {
			return internal.NewValidationError("move_in_date must be yyyy-mm-dd", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (d *CreateResidentDTO) MoveInDateValue() *time.Time {
	if d.MoveInDate == nil || *d.MoveInDate == "" {
		return nil
	}
	t, _ := time.Parse(dateLayout, *d.MoveInDate)
	return &t
}
