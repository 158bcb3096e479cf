package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ChequeStatus represents the clearing state of a tracked cheque
type ChequeStatus string

const (
	ChequeStatusPending ChequeStatus = "pending"
	ChequeStatusCleared ChequeStatus = "cleared"
	ChequeStatusBounced ChequeStatus = "bounced"
)

func (s ChequeStatus) String() string {
	return string(s)
}

func (s ChequeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *ChequeStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ChequeStatus(str)
	return nil
}

func (s ChequeStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ChequeStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ChequeStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ChequeStatus(v)
	case []byte:
		*s = ChequeStatus(string(v))
	}
	return nil
}
