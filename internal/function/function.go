package function

import "time"

// Function is a registered system capability. Permissions reference functions
// by id; the engine looks them up by code.
type Function struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Code        string    `json:"code" gorm:"column:code;not null"`
	Description *string   `json:"description" gorm:"column:description"`
	Module      string    `json:"module" gorm:"column:module;not null"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Function) TableName() string {
	return "functions"
}
