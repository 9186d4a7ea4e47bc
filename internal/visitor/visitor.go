package visitor

import "time"

// Visitor is one gate entry. Exit is recorded by stamping exit_time.
type Visitor struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"column:name;not null"`
	Document     *string    `json:"document" gorm:"column:document"`
	UnitID       int64      `json:"unit_id" gorm:"column:unit_id;not null"`
	EntryTime    time.Time  `json:"entry_time" gorm:"column:entry_time;not null"`
	ExitTime     *time.Time `json:"exit_time" gorm:"column:exit_time"`
	VehiclePlate *string    `json:"vehicle_plate" gorm:"column:vehicle_plate"`
	Purpose      *string    `json:"purpose" gorm:"column:purpose"`
	AuthorizedBy *int64     `json:"authorized_by" gorm:"column:authorized_by"`
	RegisteredBy int64      `json:"registered_by" gorm:"column:registered_by;not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (Visitor) TableName() string {
	return "visitors"
}
