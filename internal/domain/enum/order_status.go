package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle state of a wash order
type OrderStatus int

const (
	OrderStatusReceived OrderStatus = iota
	OrderStatusInProgress
	OrderStatusQualityCheck
	OrderStatusWaitingPayment
	OrderStatusCompleted
	OrderStatusCancelled
)

var orderStatusNames = [...]string{
	"RECEIVED",
	"IN_PROGRESS",
	"QUALITY_CHECK",
	"WAITING_PAYMENT",
	"COMPLETED",
	"CANCELLED",
}

func (s OrderStatus) String() string {
	if s < 0 || int(s) >= len(orderStatusNames) {
		return "UNKNOWN"
	}
	return orderStatusNames[s]
}

// IsValid reports whether the status is one of the known states
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusReceived && s <= OrderStatusCancelled
}

// IsTerminal reports whether the status admits no further payments
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ParseOrderStatus parses a status name as sent by clients
func ParseOrderStatus(name string) (OrderStatus, error) {
	for i, n := range orderStatusNames {
		if n == name {
			return OrderStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown order status %q", name)
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusReceived
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
