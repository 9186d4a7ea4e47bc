package user

import "time"

// User is an identity row. Every user belongs to exactly one group; the group
// is what permissions attach to.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"column:username;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	Email        string     `json:"email" gorm:"column:email"`
	FullName     string     `json:"full_name" gorm:"column:full_name;not null"`
	Phone        *string    `json:"phone" gorm:"column:phone"`
	GroupID      int64      `json:"group_id" gorm:"column:group_id;not null"`
	IsActive     bool       `json:"is_active" gorm:"column:is_active"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at" gorm:"column:last_login_at"`
}

func (User) TableName() string {
	return "users"
}
