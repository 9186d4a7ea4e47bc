package group

import "time"

// Group is the unit permissions attach to. Users belong to exactly one group.
type Group struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description *string   `json:"description" gorm:"column:description"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Group) TableName() string {
	return "groups"
}
