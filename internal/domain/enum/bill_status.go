package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BillStatus is the lifecycle state of a submitted bill
type BillStatus int

const (
	BillStatusPaid BillStatus = 0
	BillStatusVoid BillStatus = 1
)

func (s BillStatus) String() string {
	switch s {
	case BillStatusVoid:
		return "Void"
	default:
		return "Paid"
	}
}

func (s BillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BillStatus(i)
		return nil
	}
	switch str {
	case "Paid", "paid":
		*s = BillStatusPaid
	case "Void", "void":
		*s = BillStatusVoid
	}
	return nil
}

func (s BillStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BillStatusPaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BillStatus(v)
	case int32:
		*s = BillStatus(v)
	case int:
		*s = BillStatus(v)
	}
	return nil
}
