package notice

import (
	"time"

	"github.com/condosys/condo-management/internal/core/common/validation"
)

type CreateNoticeDTO struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Type      string     `json:"type"`
	Priority  string     `json:"priority"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (d *CreateNoticeDTO) Validate() error {
	if d.Priority == "" {
		d.Priority = PriorityNormal
	}
	v := validation.New()
	v.Required("title", d.Title)
	v.Required("content", d.Content)
	v.Required("type", d.Type)
	v.OneOf("priority", d.Priority, PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent)
	return v.Err()
}

type UpdateNoticeDTO struct {
	Title     *string    `json:"title"`
	Content   *string    `json:"content"`
	Type      *string    `json:"type"`
	Priority  *string    `json:"priority"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  *bool      `json:"is_active"`
}

func (d *UpdateNoticeDTO) Validate() error {
	v := validation.New()
	if d.Title != nil {
		v.Required("title", *d.Title)
	}
	if d.Content != nil {
		v.Required("content", *d.Content)
	}
	if d.Priority != nil {
		v.OneOf("priority", *d.Priority, PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent)
	}
	return v.Err()
}
