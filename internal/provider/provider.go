package provider

import "time"

// Provider is an external service company hired by the condominium.
type Provider struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"column:name;not null"`
	CNPJCPF       *string   `json:"cnpj_cpf" gorm:"column:cnpj_cpf"`
	ServiceType   string    `json:"service_type" gorm:"column:service_type;not null"`
	Phone         *string   `json:"phone" gorm:"column:phone"`
	Email         *string   `json:"email" gorm:"column:email"`
	Address       *string   `json:"address" gorm:"column:address"`
	ContactPerson *string   `json:"contact_person" gorm:"column:contact_person"`
	Notes         *string   `json:"notes" gorm:"column:notes"`
	IsActive      bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Provider) TableName() string {
	return "providers"
}
