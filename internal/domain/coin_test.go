package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCoinSummary_ChangeDirection(t *testing.T) {
	tests := []struct {
		change decimal.Decimal
		want   string
	}{
		{decimal.NewFromFloat(2.5), "positive"},
		{decimal.NewFromFloat(-0.01), "negative"},
		{decimal.Zero, "neutral"},
	}

	for _, tt := range tests {
		c := CoinSummary{PriceChangePercentage24h: tt.change}
		if got := c.ChangeDirection(); got != tt.want {
			t.Errorf("ChangeDirection(%s) = %s, want %s", tt.change, got, tt.want)
		}
	}
}

func TestSupply(t *testing.T) {
	t.Run("Absent by default", func(t *testing.T) {
		var s Supply
		if _, ok := s.Value(); ok {
			t.Error("zero Supply must be absent")
		}
		if NoSupply().IsPresent() {
			t.Error("NoSupply must be absent")
		}
	})

	t.Run("Present", func(t *testing.T) {
		s := SupplyOf(decimal.NewFromInt(21000000))
		v, ok := s.Value()
		if !ok || !v.Equal(decimal.NewFromInt(21000000)) {
			t.Errorf("Expected 21000000, got %v (present=%v)", v, ok)
		}
	})

	t.Run("JSON null", func(t *testing.T) {
		var m struct {
			Max Supply `json:"max_supply"`
		}
		if err := json.Unmarshal([]byte(`{"max_supply":null}`), &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if m.Max.IsPresent() {
			t.Error("null must decode as absent")
		}

		out, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != `{"max_supply":null}` {
			t.Errorf("unexpected encoding %s", out)
		}
	})

	t.Run("JSON number", func(t *testing.T) {
		var m struct {
			Max Supply `json:"max_supply"`
		}
		if err := json.Unmarshal([]byte(`{"max_supply":21000000.0}`), &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		v, ok := m.Max.Value()
		if !ok || !v.Equal(decimal.NewFromInt(21000000)) {
			t.Errorf("Expected 21000000, got %v (present=%v)", v, ok)
		}
	})
}
