package meeting

import (
	"fmt"
	"time"
)

// Status is the closed meeting state set: scheduled -> completed | cancelled.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusScheduled {
		return false
	}
	return target == StatusCompleted || target == StatusCancelled
}

// Meeting is an assembly or board meeting. Updates are audited.
type Meeting struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"column:title;not null"`
	Description *string   `json:"description" gorm:"column:description"`
	MeetingDate time.Time `json:"meeting_date" gorm:"column:meeting_date;not null"`
	Location    *string   `json:"location" gorm:"column:location"`
	OrganizerID int64     `json:"organizer_id" gorm:"column:organizer_id;not null"`
	Status      Status    `json:"status" gorm:"column:status;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Meeting) TableName() string {
	return "meetings"
}

// Minute is the written record of one meeting, at most one per meeting.
// Sending only stamps sent_at; there is no delivery channel here.
type Minute struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	MeetingID int64      `json:"meeting_id" gorm:"column:meeting_id;not null"`
	Content   string     `json:"content" gorm:"column:content;not null"`
	Attendees *string    `json:"attendees" gorm:"column:attendees"`
	Decisions *string    `json:"decisions" gorm:"column:decisions"`
	IssuedBy  int64      `json:"issued_by" gorm:"column:issued_by;not null"`
	IssuedAt  time.Time  `json:"issued_at" gorm:"column:issued_at"`
	SentAt    *time.Time `json:"sent_at" gorm:"column:sent_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Minute) TableName() string {
	return "minutes"
}

func transitionError(from, to Status) string {
	return fmt.Sprintf("cannot transition meeting from %s to %s", from, to)
}
