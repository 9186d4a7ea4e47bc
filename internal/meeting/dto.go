package meeting

import (
	"time"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/core/common/validation"
)

type CreateMeetingDTO struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	MeetingDate time.Time `json:"meeting_date"`
	Location    *string   `json:"location"`
}

func (d *CreateMeetingDTO) Validate() error {
	v := validation.New()
	v.Required("title", d.Title)
	if err := v.Err(); err != nil {
		return err
	}
	if d.MeetingDate.IsZero() {
		return internal.NewValidationError("meeting_date is required", internal.ErrCodeInvalidDate)
	}
	return nil
}

type UpdateMeetingDTO struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	MeetingDate *time.Time `json:"meeting_date"`
	Location    *string    `json:"location"`
}

func (d *UpdateMeetingDTO) Validate() error {
	v := validation.New()
	if d.Title != nil {
		v.Required("title", *d.Title)
	}
	return v.Err()
}

type CreateMinuteDTO struct {
	MeetingID int64   `json:"meeting_id"`
	Content   string  `json:"content"`
	Attendees *string `json:"attendees"`
	Decisions *string `json:"decisions"`
}

func (d *CreateMinuteDTO) Validate() error {
	v := validation.New()
	v.Positive("meeting_id", d.MeetingID)
	v.Required("content", d.Content)
	return v.Err()
}

type UpdateMinuteDTO struct {
	Content   *string `json:"content"`
	Attendees *string `json:"attendees"`
	Decisions *string `json:"decisions"`
}

func (d *UpdateMinuteDTO) Validate() error {
	v := validation.New()
	if d.Content != nil {
		v.Required("content", *d.Content)
	}
	return v.Err()
}
