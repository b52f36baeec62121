package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Supply is an optional coin supply figure.
// The zero value is "absent"; the number is only reachable through Value.
type Supply struct {
	value   decimal.Decimal
	present bool
}

// SupplyOf returns a present supply
func SupplyOf(v decimal.Decimal) Supply {
	return Supply{value: v, present: true}
}

// NoSupply returns an absent supply
func NoSupply() Supply {
	return Supply{}
}

// Value returns the supply and whether it is present
func (s Supply) Value() (decimal.Decimal, bool) {
	return s.value, s.present
}

// IsPresent reports whether a figure was published
func (s Supply) IsPresent() bool {
	return s.present
}

// MarshalJSON encodes an absent supply as null
func (s Supply) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON treats null as absent
func (s *Supply) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Supply{}
		return nil
	}
	var v decimal.Decimal
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SupplyOf(v)
	return nil
}
