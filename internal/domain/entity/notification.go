package entity

import (
	"time"

	"carwash-api/internal/domain/enum"
)

// Notification is a persisted in-app notification. Role-targeted rows feed the
// staff dashboard; rows with a nil role and an order reference feed the
// client-facing portal.
type Notification struct {
	ID      uint       `gorm:"primaryKey" json:"id"`
	Role    *enum.Role `gorm:"index" json:"role,omitempty"`
	OrderID *uint      `gorm:"index" json:"order_id,omitempty"`
	Title   string     `gorm:"size:200;not null" json:"title"`
	Message string     `gorm:"size:1000;not null" json:"message"`
	Read    bool       `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
