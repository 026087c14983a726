package events

import (
	"context"
	"time"
)

// Event is a best-effort outbound message: a notification push or a KPI
// change signal for live listeners. Delivery failures never affect the
// operation that produced the event.
type Event struct {
	Type      string    `json:"type"`
	OrderID   uint      `json:"order_id,omitempty"`
	OrderUUID string    `json:"order_uuid,omitempty"`
	Role      string    `json:"role,omitempty"`
	WasherID  string    `json:"washer_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message,omitempty"`
	At        time.Time `json:"at"`
}

// Event types
const (
	TypeOrderStatus  = "order.status"
	TypeNotification = "notification"
	TypeKPIChanged   = "kpi.changed"
)

// Publisher pushes events to live listeners
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards everything
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish discards the event
func (NoopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}

// Close is a no-op
func (NoopPublisher) Close() {}
