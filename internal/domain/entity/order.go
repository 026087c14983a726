package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-api/internal/domain/enum"
)

// Order represents one vehicle's wash job.
//
// The numeric ID is used internally (URLs, joins); the PublicID is the handle
// exposed to status-mutating endpoints and the client portal so sequential ids
// never leak. Totals are frozen at creation and never recomputed, even if the
// service catalog changes later.
type Order struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	PublicID     uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null" json:"public_id"`
	VehicleID    uint             `gorm:"not null;index" json:"vehicle_id"`
	SupervisorID *uuid.UUID       `gorm:"type:uuid;index" json:"supervisor_id,omitempty"`
	Status       enum.OrderStatus `gorm:"default:0;index" json:"status"`

	TotalCents       int64 `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	DeliveryFeeCents int64 `gorm:"default:0" json:"-"`

	// Timer fields. StartedAt is rebased on re-entering IN_PROGRESS so that
	// pause/resume works without an accumulated-duration column.
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	DurationMinutes *int       `json:"duration,omitempty"`

	CancellationReason *string `gorm:"size:500" json:"cancellation_reason,omitempty"`

	// Change returned by the cashier, recorded as an annotation on the order
	// rather than a ledger entry.
	ChangeCents    *int64              `json:"-"`
	ChangeCurrency *enum.Currency      `json:"change_currency,omitempty"`
	ChangeMethod   *enum.PaymentMethod `json:"change_method,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Vehicle    Vehicle     `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Supervisor *User       `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments   []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	out := &struct {
		Alias
		Total       float64  `json:"total"`
		DeliveryFee float64  `json:"delivery_fee"`
		Change      *float64 `json:"change,omitempty"`
	}{
		Alias:       Alias(o),
		Total:       float64(o.TotalCents) / 100,
		DeliveryFee: float64(o.DeliveryFeeCents) / 100,
	}
	if o.ChangeCents != nil {
		change := float64(*o.ChangeCents) / 100
		out.Change = &change
	}
	return json.Marshal(out)
}

// BeforeCreate generates the public UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.PublicID == uuid.Nil {
		o.PublicID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// PaidUSDCents sums the stored settlement-currency amounts of the loaded
// payments. The stored amount_usd is authoritative; amounts are never
// re-derived from amount/exchange_rate at read time.
func (o *Order) PaidUSDCents() int64 {
	var sum int64
	for _, p := range o.Payments {
		sum += p.AmountUSDCents
	}
	return sum
}

// OrderItem is one selected service within an order. The service name, price
// and commission are snapshotted at creation so later catalog edits do not
// change historical orders.
type OrderItem struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OrderID       uint   `gorm:"not null;index" json:"order_id"`
	WashServiceID uint   `gorm:"not null;index" json:"wash_service_id"`
	ServiceName   string `gorm:"size:200;not null" json:"service_name"`

	PriceCents        int64   `gorm:"not null" json:"-"`
	CommissionPercent float64 `gorm:"not null" json:"commission_percent"`
	CommissionCents   int64   `gorm:"not null" json:"-"`

	WasherID *uuid.UUID `gorm:"type:uuid;index" json:"washer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Washer  *User    `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
	Earning *Earning `gorm:"foreignKey:OrderItemID" json:"earning,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		Price      float64 `json:"price"`
		Commission float64 `json:"commission"`
	}{
		Alias:      Alias(oi),
		Price:      float64(oi.PriceCents) / 100,
		Commission: float64(oi.CommissionCents) / 100,
	})
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
