package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"carwash-api/internal/domain/enum"
)

// Earning is one washer's commission for one order item. The unique index on
// OrderItemID enforces at most one earning per item, which is what makes
// registration idempotent under retries and concurrent calls.
type Earning struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderItemID uint      `gorm:"not null;uniqueIndex" json:"order_item_id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	WasherID    uuid.UUID `gorm:"type:uuid;not null;index" json:"washer_id"`

	CommissionCents int64              `gorm:"not null" json:"-"`
	Status          enum.EarningStatus `gorm:"default:0;index" json:"status"`

	EarnedAt time.Time  `gorm:"not null" json:"earned_at"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Washer *User `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Earning) MarshalJSON() ([]byte, error) {
	type Alias Earning
	return json.Marshal(&struct {
		Alias
		Commission float64 `json:"commission"`
	}{
		Alias:      Alias(e),
		Commission: float64(e.CommissionCents) / 100,
	})
}

// TableName returns the table name for the Earning model
func (Earning) TableName() string {
	return "washer_earnings"
}
