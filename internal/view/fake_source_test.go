package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"coinboard/internal/domain"

	"github.com/shopspring/decimal"
)

var errUnreachable = domain.NewNetworkError("coin_list", errors.New("connection refused"))

// fakeSource is a scriptable MarketDataSource
type fakeSource struct {
	listCalls   atomic.Int32
	detailCalls atomic.Int32

	mu       sync.Mutex
	listFn   func(call int32) ([]domain.CoinSummary, error)
	detailFn func(id string) (*domain.CoinDetail, error)
}

func (f *fakeSource) FetchCoinList(ctx context.Context) ([]domain.CoinSummary, error) {
	n := f.listCalls.Add(1)
	f.mu.Lock()
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return testCoins(), nil
	}
	return fn(n)
}

func (f *fakeSource) FetchCoinDetail(ctx context.Context, id string) (*domain.CoinDetail, error) {
	f.detailCalls.Add(1)
	f.mu.Lock()
	fn := f.detailFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(id)
}

func testCoins() []domain.CoinSummary {
	return []domain.CoinSummary{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: decimal.NewFromInt(67000)},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: decimal.NewFromInt(3400)},
		{ID: "tether", Symbol: "usdt", Name: "Tether", CurrentPrice: decimal.NewFromInt(1)},
	}
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
