package notice

import "time"

// Priority values for notices.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Notice is a published announcement. The notice board shows active,
// unexpired notices; updates are audited.
type Notice struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"column:title;not null"`
	Content     string     `json:"content" gorm:"column:content;not null"`
	Type        string     `json:"type" gorm:"column:type;not null"`
	Priority    string     `json:"priority" gorm:"column:priority;not null"`
	PublishedBy int64      `json:"published_by" gorm:"column:published_by;not null"`
	PublishedAt time.Time  `json:"published_at" gorm:"column:published_at"`
	ExpiresAt   *time.Time `json:"expires_at" gorm:"column:expires_at"`
	IsActive    bool       `json:"is_active" gorm:"column:is_active"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Notice) TableName() string {
	return "notices"
}
