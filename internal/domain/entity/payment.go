package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"carwash-api/internal/domain/enum"
)

// Payment is one money-received event against an order. Payments are
// append-only: rows are never mutated or deleted individually, and an order's
// amount paid is always the sum over its rows.
type Payment struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`

	AmountCents int64              `gorm:"not null" json:"-"` // In Currency, stored in cents
	Currency    enum.Currency      `gorm:"not null" json:"currency"`
	Method      enum.PaymentMethod `gorm:"not null" json:"method"`

	// ExchangeRate is 1 for USD and the validated market rate (rounded to 2
	// decimals) for VES at capture time. AmountUSDCents is derived once at
	// capture and stored so reads never recompute it.
	ExchangeRate   float64 `gorm:"not null;default:1" json:"exchange_rate"`
	AmountUSDCents int64   `gorm:"not null" json:"-"`

	Reference string     `gorm:"size:200" json:"reference,omitempty"`
	CashierID *uuid.UUID `gorm:"type:uuid;index" json:"cashier_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount    float64 `json:"amount"`
		AmountUSD float64 `json:"amount_usd"`
	}{
		Alias:     Alias(p),
		Amount:    float64(p.AmountCents) / 100,
		AmountUSD: float64(p.AmountUSDCents) / 100,
	})
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
