package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is stored as a JSON array column (applicable item IDs, etc).
type StringList []string

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = []string{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("failed to scan StringList: %v", value)
	}
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// DiscountDetail is one itemized entry of a discount breakdown.
type DiscountDetail struct {
	Type         string `json:"type"`
	Description  string `json:"description"`
	Amount       int64  `json:"amount"`
	FreeQuantity int    `json:"free_quantity,omitempty"`
}

// DiscountDetailList persists the structured breakdown on the order row.
type DiscountDetailList []DiscountDetail

func (l *DiscountDetailList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("failed to scan DiscountDetailList: %v", value)
	}
}

func (l DiscountDetailList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}
