package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReturnStatus labels whether a sale was returned in part or in full.
// It is informational; the returns engine derives it but never enforces it.
type ReturnStatus string

const (
	ReturnStatusPartial  ReturnStatus = "partial"
	ReturnStatusComplete ReturnStatus = "complete"
)

func (s ReturnStatus) String() string {
	return string(s)
}

func (s ReturnStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *ReturnStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ReturnStatus(str)
	return nil
}

func (s ReturnStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ReturnStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReturnStatusPartial
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ReturnStatus(v)
	case []byte:
		*s = ReturnStatus(string(v))
	}
	return nil
}
