package scheduling

import (
	"time"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/core/common/validation"
)

type CreateAreaDTO struct {
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	Capacity         *int64  `json:"capacity"`
	HourlyRateCents  *int64  `json:"hourly_rate_cents"`
	RequiresApproval bool    `json:"requires_approval"`
}

func (d *CreateAreaDTO) Validate() error {
	v := validation.New()
	v.Required("name", d.Name)
	if d.Capacity != nil {
		v.Positive("capacity", *d.Capacity)
	}
	if d.HourlyRateCents != nil {
		v.NonNegative("hourly_rate_cents", *d.HourlyRateCents)
	}
	return v.Err()
}

type UpdateAreaDTO struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	Capacity         *int64  `json:"capacity"`
	HourlyRateCents  *int64  `json:"hourly_rate_cents"`
	RequiresApproval *bool   `json:"requires_approval"`
	IsActive         *bool   `json:"is_active"`
}

func (d *UpdateAreaDTO) Validate() error {
	v := validation.New()
	if d.Name != nil {
		v.Required("name", *d.Name)
	}
	if d.Capacity != nil {
		v.Positive("capacity", *d.Capacity)
	}
	return v.Err()
}

type CreateSchedulingDTO struct {
	AreaID        int64     `json:"area_id"`
	UnitID        int64     `json:"unit_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Purpose       *string   `json:"purpose"`
	GuestsCount   *int64    `json:"guests_count"`
}

func (d *CreateSchedulingDTO) Validate() error {
	v := validation.New()
	v.Positive("area_id", d.AreaID)
	v.Positive("unit_id", d.UnitID)
	if d.GuestsCount != nil {
		v.NonNegative("guests_count", *d.GuestsCount)
	}
	if err := v.Err(); err != nil {
		return err
	}
	if d.StartDatetime.IsZero() || d.EndDatetime.IsZero() {
		return internal.NewValidationError("start_datetime and end_datetime are required", internal.ErrCodeInvalidDate)
	}
	if !d.StartDatetime.Before(d.EndDatetime) {
		return internal.NewValidationError("start_datetime must be before end_datetime", internal.ErrCodeInvalidDate)
	}
	return nil
}

type DecisionDTO struct {
	Notes *string `json:"notes"`
}
