package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"coinboard/internal/domain"

	"github.com/shopspring/decimal"
)

func bitcoinDetail() *domain.CoinDetail {
	return &domain.CoinDetail{
		ID:     "bitcoin",
		Symbol: "btc",
		Name:   "Bitcoin",
		Market: domain.MarketDetail{
			CurrentPrice: decimal.RequireFromString("67123.45"),
			MaxSupply:    domain.SupplyOf(decimal.NewFromInt(21000000)),
		},
	}
}

func TestCoinDetailView_Ready(t *testing.T) {
	src := &fakeSource{
		detailFn: func(id string) (*domain.CoinDetail, error) {
			if id == "bitcoin" {
				return bitcoinDetail(), nil
			}
			return nil, nil
		},
	}
	v := NewCoinDetailView(src)

	if v.Snapshot().State != StateLoading {
		t.Fatal("Expected loading before navigation")
	}

	snap := v.Navigate(context.Background(), "bitcoin")
	if snap.State != StateReady {
		t.Fatalf("Expected ready, got %s", snap.State)
	}
	if snap.Coin.Name != "Bitcoin" || snap.Coin.Symbol != "btc" {
		t.Errorf("unexpected coin %+v", snap.Coin)
	}
	if !snap.Coin.Market.CurrentPrice.Equal(decimal.RequireFromString("67123.45")) {
		t.Errorf("price changed: %s", snap.Coin.Market.CurrentPrice)
	}
	if snap.ID != "bitcoin" {
		t.Errorf("Expected id bitcoin, got %s", snap.ID)
	}
}

func TestCoinDetailView_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) (*domain.CoinDetail, error)
		message string
	}{
		{
			name:    "nil result",
			fn:      func(string) (*domain.CoinDetail, error) { return nil, nil },
			message: "Coin not found",
		},
		{
			name: "network failure",
			fn: func(string) (*domain.CoinDetail, error) {
				return nil, domain.NewNetworkError("coin_detail", errors.New("timeout"))
			},
			message: "Failed to fetch coin details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewCoinDetailView(&fakeSource{detailFn: tt.fn})
			snap := v.Navigate(context.Background(), "nope")
			if snap.State != StateNotFound {
				t.Errorf("Expected not_found, got %s", snap.State)
			}
			if snap.Coin != nil {
				t.Error("Expected no coin")
			}
			if snap.Error != tt.message {
				t.Errorf("Expected %q, got %q", tt.message, snap.Error)
			}
		})
	}
}

func TestCoinDetailView_RenavigateDiscardsPrevious(t *testing.T) {
	src := &fakeSource{
		detailFn: func(id string) (*domain.CoinDetail, error) {
			if id == "bitcoin" {
				return bitcoinDetail(), nil
			}
			return nil, nil
		},
	}
	v := NewCoinDetailView(src)

	v.Navigate(context.Background(), "bitcoin")
	snap := v.Navigate(context.Background(), "ghost")

	if snap.State != StateNotFound || snap.Coin != nil {
		t.Errorf("previous record leaked into new navigation: %+v", snap)
	}
	if snap.ID != "ghost" {
		t.Errorf("Expected id ghost, got %s", snap.ID)
	}
}

func TestCoinDetailView_SupersededNavigation(t *testing.T) {
	slow := make(chan struct{})
	src := &fakeSource{
		detailFn: func(id string) (*domain.CoinDetail, error) {
			if id == "slow" {
				<-slow
				return &domain.CoinDetail{ID: "slow", Name: "Slow"}, nil
			}
			return bitcoinDetail(), nil
		},
	}
	v := NewCoinDetailView(src)

	done := make(chan DetailSnapshot)
	go func() { done <- v.Navigate(context.Background(), "slow") }()

	waitFor(t, "slow request in flight", func() bool { return src.detailCalls.Load() == 1 })

	if snap := v.Navigate(context.Background(), "bitcoin"); snap.State != StateReady {
		t.Fatalf("Expected ready, got %s", snap.State)
	}

	close(slow)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("slow navigation did not return")
	}

	snap := v.Snapshot()
	if snap.Coin == nil || snap.Coin.ID != "bitcoin" {
		t.Errorf("superseded response was applied: %+v", snap.Coin)
	}
}

func TestCoinDetailView_Close(t *testing.T) {
	src := &fakeSource{
		detailFn: func(string) (*domain.CoinDetail, error) { return bitcoinDetail(), nil },
	}
	v := NewCoinDetailView(src)
	v.Navigate(context.Background(), "bitcoin")

	v.Close()
	snap := v.Snapshot()
	if snap.Coin != nil {
		t.Error("Close should discard the record")
	}
	if snap.State == StateReady {
		t.Error("a closed view must not report ready without a record")
	}
	if snap.State != StateLoading {
		t.Errorf("Expected loading after Close, got %s", snap.State)
	}

	v.Navigate(context.Background(), "bitcoin")
	if src.detailCalls.Load() != 1 {
		t.Error("Navigate after Close must not fetch")
	}
}

func TestParseSection(t *testing.T) {
	tests := []struct {
		name string
		want Section
	}{
		{"links", SectionLinks},
		{"developer", SectionDeveloper},
		{"description", SectionDescription},
		{"bogus", SectionDescription},
		{"", SectionDescription},
	}

	for _, tt := range tests {
		if got := ParseSection(tt.name, SectionDescription); got != tt.want {
			t.Errorf("ParseSection(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}

	if SectionDeveloper.Title() != "Developer Data" {
		t.Errorf("unexpected title %q", SectionDeveloper.Title())
	}
}
