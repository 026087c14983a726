package entity

import (
	"time"

	"gorm.io/gorm"
)

// VehicleCategory is a dynamic reference (id + code). There is no parallel
// fixed-enum mirror: categories live entirely in this table.
type VehicleCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name string `gorm:"size:200;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the VehicleCategory model
func (VehicleCategory) TableName() string {
	return "vehicle_categories"
}

// Vehicle is a registered client vehicle
type Vehicle struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Plate      string `gorm:"size:20;uniqueIndex;not null" json:"plate"`
	Brand      string `gorm:"size:100" json:"brand,omitempty"`
	Model      string `gorm:"size:100" json:"model,omitempty"`
	Color      string `gorm:"size:50" json:"color,omitempty"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	OwnerName  string `gorm:"size:200" json:"owner_name,omitempty"`
	OwnerPhone string `gorm:"size:50" json:"owner_phone,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category VehicleCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}
