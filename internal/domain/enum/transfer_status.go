package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// TransferStatus represents the state of a stock transfer between locations
type TransferStatus int

const (
	TransferStatusPending   TransferStatus = 0
	TransferStatusReceived  TransferStatus = 1
	TransferStatusCancelled TransferStatus = 2
)

// ParseTransferStatus maps a query value to its status
func ParseTransferStatus(s string) (TransferStatus, bool) {
	switch strings.ToLower(s) {
	case "pending":
		return TransferStatusPending, true
	case "received":
		return TransferStatusReceived, true
	case "cancelled":
		return TransferStatusCancelled, true
	}
	return TransferStatusPending, false
}

func (s TransferStatus) String() string {
	names := [...]string{"Pending", "Received", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s TransferStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransferStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransferStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = TransferStatusPending
	case "Received":
		*s = TransferStatusReceived
	case "Cancelled":
		*s = TransferStatusCancelled
	}
	return nil
}

func (s TransferStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransferStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransferStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransferStatus(v)
	case int:
		*s = TransferStatus(v)
	}
	return nil
}
