package residence

import "time"

// Condominium is the top of the residence hierarchy.
type Condominium struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	CNPJ      *string   `json:"cnpj" gorm:"column:cnpj"`
	Address   string    `json:"address" gorm:"column:address;not null"`
	Phone     *string   `json:"phone" gorm:"column:phone"`
	Email     *string   `json:"email" gorm:"column:email"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Condominium) TableName() string {
	return "condominiums"
}

// Unit is one apartment or house inside a condominium.
type Unit struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	CondominiumID int64     `json:"condominium_id" gorm:"column:condominium_id;not null"`
	Block         *string   `json:"block" gorm:"column:block"`
	Number        string    `json:"number" gorm:"column:number;not null"`
	Floor         *int64    `json:"floor" gorm:"column:floor"`
	Type          *string   `json:"type" gorm:"column:type"`
	IsActive      bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Unit) TableName() string {
	return "units"
}

// Resident links a user to a unit. Deleting the user cascades to its resident
// links at the database level.
type Resident struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	UserID       int64      `json:"user_id" gorm:"column:user_id;not null"`
	UnitID       int64      `json:"unit_id" gorm:"column:unit_id;not null"`
	Relationship string     `json:"relationship" gorm:"column:relationship;not null"`
	IsOwner      bool       `json:"is_owner" gorm:"column:is_owner"`
	IsPrimary    bool       `json:"is_primary" gorm:"column:is_primary"`
	MoveInDate   *time.Time `json:"move_in_date" gorm:"column:move_in_date"`
	MoveOutDate  *time.Time `json:"move_out_date" gorm:"column:move_out_date"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (Resident) TableName() string {
	return "residents"
}
