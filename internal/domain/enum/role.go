package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role represents a staff role
type Role int

const (
	RoleAdmin Role = iota
	RoleSupervisor
	RoleCashier
	RoleWasher
)

var roleNames = [...]string{"ADMIN", "SUPERVISOR", "CASHIER", "WASHER"}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "UNKNOWN"
	}
	return roleNames[r]
}

// ParseRole parses a role name
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseRole(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleWasher
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = Role(v)
	case int:
		*r = Role(v)
	}
	return nil
}
