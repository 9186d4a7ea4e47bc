package patrimony

import "time"

// Patrimony is a condominium-owned asset. Values are integer cents; updates
// are audited field by field.
type Patrimony struct {
	ID                    int64      `json:"id" gorm:"primaryKey"`
	Name                  string     `json:"name" gorm:"column:name;not null"`
	Description           *string    `json:"description" gorm:"column:description"`
	Category              string     `json:"category" gorm:"column:category;not null"`
	Location              *string    `json:"location" gorm:"column:location"`
	AcquisitionDate       *time.Time `json:"acquisition_date" gorm:"column:acquisition_date"`
	AcquisitionValueCents *int64     `json:"acquisition_value_cents" gorm:"column:acquisition_value_cents"`
	CurrentValueCents     *int64     `json:"current_value_cents" gorm:"column:current_value_cents"`
	Condition             *string    `json:"condition" gorm:"column:condition"`
	SerialNumber          *string    `json:"serial_number" gorm:"column:serial_number"`
	Notes                 *string    `json:"notes" gorm:"column:notes"`
	IsActive              bool       `json:"is_active" gorm:"column:is_active"`
	CreatedAt             time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt             time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Patrimony) TableName() string {
	return "patrimonies"
}
