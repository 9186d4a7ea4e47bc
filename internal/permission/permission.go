package permission

import (
	"time"

	"github.com/condosys/condo-management/internal/auth"
)

// Permission is one (group, function, action) grant. The triple is unique:
// granting the same tuple twice is a conflict.
type Permission struct {
	ID         int64       `json:"id" gorm:"primaryKey"`
	GroupID    int64       `json:"group_id" gorm:"column:group_id;not null"`
	FunctionID int64       `json:"function_id" gorm:"column:function_id;not null"`
	Action     auth.Action `json:"action" gorm:"column:action;not null"`
	CreatedAt  time.Time   `json:"created_at" gorm:"column:created_at"`
}

func (Permission) TableName() string {
	return "permissions"
}
