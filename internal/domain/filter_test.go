package domain

import (
	"strings"
	"testing"
)

func sampleCoins() []CoinSummary {
	return []CoinSummary{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
		{ID: "tether", Symbol: "usdt", Name: "Tether"},
		{ID: "wrapped-bitcoin", Symbol: "wbtc", Name: "Wrapped Bitcoin"},
		{ID: "ethereum-classic", Symbol: "etc", Name: "Ethereum Classic"},
	}
}

func TestFilterCoins_EmptyQueryReturnsAllInOrder(t *testing.T) {
	coins := sampleCoins()
	got := FilterCoins(coins, "")

	if len(got) != len(coins) {
		t.Fatalf("Expected %d coins, got %d", len(coins), len(got))
	}
	for i := range coins {
		if got[i].ID != coins[i].ID {
			t.Errorf("position %d: expected %s, got %s", i, coins[i].ID, got[i].ID)
		}
	}
}

func TestFilterCoins_Matches(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name substring", "coin", []string{"bitcoin", "wrapped-bitcoin"}},
		{"symbol substring", "usd", []string{"tether"}},
		{"case insensitive", "ETH", []string{"ethereum", "tether", "ethereum-classic"}},
		{"matches symbol only", "wbt", []string{"wrapped-bitcoin"}},
		{"no match", "doge", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCoins(sampleCoins(), tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterCoins(%q) returned %d coins, want %d", tt.query, len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("FilterCoins(%q)[%d] = %s, want %s", tt.query, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterCoins_SoundAndComplete(t *testing.T) {
	coins := sampleCoins()
	for _, q := range []string{"b", "Et", "THER", "c", "x", "in", "t"} {
		got := FilterCoins(coins, q)
		included := make(map[string]bool, len(got))
		for _, c := range got {
			included[c.ID] = true
		}

		lq := strings.ToLower(q)
		for _, c := range coins {
			match := strings.Contains(strings.ToLower(c.Name), lq) || strings.Contains(strings.ToLower(c.Symbol), lq)
			if match != included[c.ID] {
				t.Errorf("query %q: coin %s match=%v included=%v", q, c.ID, match, included[c.ID])
			}
		}
	}
}

func TestFilterCoins_DoesNotMutateInput(t *testing.T) {
	coins := sampleCoins()
	got := FilterCoins(coins, "")
	got[0].Name = "changed"

	if coins[0].Name != "Bitcoin" {
		t.Error("FilterCoins must not share storage with its input")
	}

	_ = FilterCoins(coins, "eth")
	if len(coins) != 5 || coins[1].ID != "ethereum" {
		t.Error("input slice changed after filtering")
	}
}

func TestUniqueByID(t *testing.T) {
	coins := []CoinSummary{
		{ID: "bitcoin", Name: "first"},
		{ID: "ethereum"},
		{ID: "bitcoin", Name: "second"},
	}

	got := UniqueByID(coins)
	if len(got) != 2 {
		t.Fatalf("Expected 2 coins, got %d", len(got))
	}
	if got[0].Name != "first" {
		t.Errorf("Expected first occurrence to win, got %q", got[0].Name)
	}
}

func TestValidCoinID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"bitcoin", true},
		{"wrapped-bitcoin", true},
		{"usd-coin.e", true},
		{"", false},
		{"../etc/passwd", false},
		{"Bitcoin", false},
		{"bit coin", false},
		{strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		if got := ValidCoinID(tt.id); got != tt.want {
			t.Errorf("ValidCoinID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
