package employee

import "time"

// Employee is a condominium staff member. Updates are audited field by field;
// salary is stored as integer cents.
type Employee struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"column:name;not null"`
	CPF             string     `json:"cpf" gorm:"column:cpf;not null"`
	Role            string     `json:"role" gorm:"column:role;not null"`
	Phone           *string    `json:"phone" gorm:"column:phone"`
	Email           *string    `json:"email" gorm:"column:email"`
	Address         *string    `json:"address" gorm:"column:address"`
	HireDate        time.Time  `json:"hire_date" gorm:"column:hire_date;not null"`
	TerminationDate *time.Time `json:"termination_date" gorm:"column:termination_date"`
	SalaryCents     *int64     `json:"salary_cents" gorm:"column:salary_cents"`
	IsActive        bool       `json:"is_active" gorm:"column:is_active"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
