package scheduling

import (
	"fmt"
	"time"
)

// Status is the closed scheduling state set. Every scheduling starts pending;
// the only transitions are pending -> approved, rejected or cancelled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// CanTransitionTo reports whether the transition is allowed. Terminal states
// allow nothing, so a second approve on an approved scheduling is rejected.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusPending {
		return false
	}
	switch target {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Area is a bookable common space.
type Area struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"column:name;not null"`
	Description      *string   `json:"description" gorm:"column:description"`
	Capacity         *int64    `json:"capacity" gorm:"column:capacity"`
	HourlyRateCents  *int64    `json:"hourly_rate_cents" gorm:"column:hourly_rate_cents"`
	RequiresApproval bool      `json:"requires_approval" gorm:"column:requires_approval"`
	IsActive         bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Area) TableName() string {
	return "areas"
}

// Scheduling is one reservation of an area by a unit.
type Scheduling struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	AreaID        int64      `json:"area_id" gorm:"column:area_id;not null"`
	UnitID        int64      `json:"unit_id" gorm:"column:unit_id;not null"`
	UserID        int64      `json:"user_id" gorm:"column:user_id;not null"`
	StartDatetime time.Time  `json:"start_datetime" gorm:"column:start_datetime;not null"`
	EndDatetime   time.Time  `json:"end_datetime" gorm:"column:end_datetime;not null"`
	Status        Status     `json:"status" gorm:"column:status;not null"`
	Purpose       *string    `json:"purpose" gorm:"column:purpose"`
	GuestsCount   *int64     `json:"guests_count" gorm:"column:guests_count"`
	ApprovedBy    *int64     `json:"approved_by" gorm:"column:approved_by"`
	ApprovedAt    *time.Time `json:"approved_at" gorm:"column:approved_at"`
	Notes         *string    `json:"notes" gorm:"column:notes"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Scheduling) TableName() string {
	return "schedulings"
}

// transitionError builds the uniform invalid-status message.
func transitionError(from, to Status) string {
	return fmt.Sprintf("cannot transition scheduling from %s to %s", from, to)
}
