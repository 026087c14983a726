package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Currency represents the currency of a payment amount
type Currency int

const (
	CurrencyUSD Currency = iota
	CurrencyVES
)

var currencyNames = [...]string{"USD", "VES"}

func (c Currency) String() string {
	if c < 0 || int(c) >= len(currencyNames) {
		return "UNKNOWN"
	}
	return currencyNames[c]
}

// ParseCurrency parses a currency code as sent by clients
func ParseCurrency(code string) (Currency, error) {
	for i, n := range currencyNames {
		if n == code {
			return Currency(i), nil
		}
	}
	return 0, fmt.Errorf("unknown currency %q", code)
}

func (c Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Currency) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseCurrency(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Currency) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *Currency) Scan(value interface{}) error {
	if value == nil {
		*c = CurrencyUSD
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = Currency(v)
	case int:
		*c = Currency(v)
	}
	return nil
}

// PaymentMethod represents how money was received
type PaymentMethod int

const (
	PaymentMethodCash PaymentMethod = iota
	PaymentMethodCard
	PaymentMethodTransfer
)

var paymentMethodNames = [...]string{"CASH", "CARD", "TRANSFER"}

func (m PaymentMethod) String() string {
	if m < 0 || int(m) >= len(paymentMethodNames) {
		return "UNKNOWN"
	}
	return paymentMethodNames[m]
}

// ParsePaymentMethod parses a payment method as sent by clients
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	for i, n := range paymentMethodNames {
		if n == name {
			return PaymentMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown payment method %q", name)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
