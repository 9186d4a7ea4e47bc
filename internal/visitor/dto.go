package visitor

import "github.com/condosys/condo-management/internal/core/common/validation"

type RegisterVisitorDTO struct {
	Name         string  `json:"name"`
	Document     *string `json:"document"`
	UnitID       int64   `json:"unit_id"`
	VehiclePlate *string `json:"vehicle_plate"`
	Purpose      *string `json:"purpose"`
	AuthorizedBy *int64  `json:"authorized_by"`
}

func (d *RegisterVisitorDTO) Validate() error {
	v := validation.New()
	v.Required("name", d.Name)
	v.Positive("unit_id", d.UnitID)
	if d.AuthorizedBy != nil {
		v.Positive("authorized_by", *d.AuthorizedBy)
	}
	return v.Err()
}
