package entity

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// WashService is a catalog entry for a sellable wash service. Orders snapshot
// the price and commission at creation, so editing a service here never
// touches historical orders.
type WashService struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"size:200;not null" json:"name"`
	PriceCents        int64   `gorm:"not null" json:"-"`
	CommissionPercent float64 `gorm:"not null;default:0" json:"commission_percent"`
	Active            bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s WashService) MarshalJSON() ([]byte, error) {
	type Alias WashService
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(s),
		Price: float64(s.PriceCents) / 100,
	})
}

// TableName returns the table name for the WashService model
func (WashService) TableName() string {
	return "wash_services"
}
