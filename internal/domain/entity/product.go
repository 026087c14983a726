package entity

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Product is a consumable inventory item (soap, wax, towels)
type Product struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:200;not null" json:"name"`
	Code          string `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Stock         int    `gorm:"default:0" json:"stock"`
	UnitCostCents int64  `gorm:"default:0" json:"-"`
	ReorderLevel  int    `gorm:"default:0" json:"reorder_level"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		UnitCost float64 `json:"unit_cost"`
	}{
		Alias:    Alias(p),
		UnitCost: float64(p.UnitCostCents) / 100,
	})
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
