package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-api/internal/domain/enum"
)

// Expense is a business expense, settled in USD using the same converter as
// payments so multi-currency spending reconciles in one currency.
type Expense struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"size:500;not null" json:"description"`
	Category    string `gorm:"size:100" json:"category,omitempty"`

	AmountCents    int64         `gorm:"not null" json:"-"`
	Currency       enum.Currency `gorm:"not null" json:"currency"`
	ExchangeRate   float64       `gorm:"not null;default:1" json:"exchange_rate"`
	AmountUSDCents int64         `gorm:"not null" json:"-"`

	SpentAt      time.Time  `gorm:"not null" json:"spent_at"`
	RecordedByID *uuid.UUID `gorm:"type:uuid" json:"recorded_by_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount    float64 `json:"amount"`
		AmountUSD float64 `json:"amount_usd"`
	}{
		Alias:     Alias(e),
		Amount:    float64(e.AmountCents) / 100,
		AmountUSD: float64(e.AmountUSDCents) / 100,
	})
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
