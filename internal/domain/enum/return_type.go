package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReturnType distinguishes a cash refund from an exchange for other merchandise
type ReturnType string

const (
	ReturnTypeRefund   ReturnType = "refund"
	ReturnTypeExchange ReturnType = "exchange"
)

func (t ReturnType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known return type
func (t ReturnType) IsValid() bool {
	return t == ReturnTypeRefund || t == ReturnTypeExchange
}

func (t ReturnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *ReturnType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ReturnType(str)
	return nil
}

func (t ReturnType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ReturnType) Scan(value interface{}) error {
	if value == nil {
		*t = ReturnTypeRefund
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = ReturnType(v)
	case []byte:
		*t = ReturnType(string(v))
	}
	return nil
}
