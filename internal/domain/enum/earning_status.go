package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// EarningStatus represents the lifecycle state of a washer commission record
type EarningStatus int

const (
	EarningStatusPending EarningStatus = iota
	EarningStatusPaid
	EarningStatusCancelled
)

var earningStatusNames = [...]string{"PENDING", "PAID", "CANCELLED"}

func (s EarningStatus) String() string {
	if s < 0 || int(s) >= len(earningStatusNames) {
		return "UNKNOWN"
	}
	return earningStatusNames[s]
}

// ParseEarningStatus parses an earning status name as sent by clients
func ParseEarningStatus(name string) (EarningStatus, error) {
	for i, n := range earningStatusNames {
		if n == name {
			return EarningStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown earning status %q", name)
}

func (s EarningStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *EarningStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseEarningStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s EarningStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *EarningStatus) Scan(value interface{}) error {
	if value == nil {
		*s = EarningStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = EarningStatus(v)
	case int:
		*s = EarningStatus(v)
	}
	return nil
}
