package view

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"coinboard/internal/domain"
	"coinboard/internal/infra"
)

var (
	// ErrAlreadyMounted is returned by Mount on a view that is already polling
	ErrAlreadyMounted = errors.New("view already mounted")

	// ErrNotMounted is returned by Refresh on a view that is not polling
	ErrNotMounted = errors.New("view not mounted")
)

// DefaultPollInterval is the list refresh period
const DefaultPollInterval = 60 * time.Second

// ListSnapshot is a point-in-time, filtered view of the coin table
type ListSnapshot struct {
	State     State                `json:"state"`
	Query     string               `json:"query"`
	Coins     []domain.CoinSummary `json:"coins"`
	Total     int                  `json:"total"`
	Error     string               `json:"error,omitempty"`
	UpdatedAt time.Time            `json:"updated_at"`
	Seq       uint64               `json:"seq"`
}

// HasData reports whether a successful fetch has been applied
func (s ListSnapshot) HasData() bool {
	return !s.UpdatedAt.IsZero()
}

// CoinListView owns the coin table: it fetches on mount, re-fetches on a
// fixed period and filters the last fetched set on demand.
//
// Every fetch takes a sequence number; a response is applied only while its
// number is still the latest issued. After a failure the previously fetched
// coins stay available next to the error.
type CoinListView struct {
	source   domain.MarketDataSource
	interval time.Duration
	metrics  *infra.Metrics
	logger   *slog.Logger

	issued atomic.Uint64

	mu        sync.RWMutex
	state     State
	coins     []domain.CoinSummary
	errMsg    string
	updatedAt time.Time
	appliedAt uint64
	mounted   bool
	fetchCtx  context.Context
	subs      map[int]chan struct{}
	nextSub   int

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	launching sync.WaitGroup
}

// NewCoinListView creates an unmounted list view.
// A non-positive interval falls back to DefaultPollInterval; metrics may be nil.
func NewCoinListView(source domain.MarketDataSource, interval time.Duration, metrics *infra.Metrics) *CoinListView {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if metrics == nil {
		metrics = &infra.Metrics{}
	}
	return &CoinListView{
		source:   source,
		interval: interval,
		metrics:  metrics,
		logger:   slog.Default().With("module", "coin_list_view"),
		state:    StateLoading,
		subs:     make(map[int]chan struct{}),
	}
}

// Mount issues the first fetch and starts the poll timer.
// It returns immediately; the view stays in StateLoading until the first response.
func (v *CoinListView) Mount(ctx context.Context) error {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return ErrAlreadyMounted
	}
	ctx, v.cancel = context.WithCancel(ctx)
	// In-flight requests are not cancelled on unmount; their results are dropped instead
	v.fetchCtx = context.WithoutCancel(ctx)
	v.mounted = true
	v.state = StateLoading
	v.mu.Unlock()

	v.wg.Add(1)
	go v.pollLoop(ctx)

	slog.InfoContext(ctx, "✅ Coin list view mounted", slog.Duration("interval", v.interval))
	return nil
}

func (v *CoinListView) pollLoop(ctx context.Context) {
	defer v.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("Coin list polling panic recovered", slog.Any("panic", r))
		}
	}()

	v.startFetch()

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			v.logger.Info("Coin list polling stopped")
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			v.metrics.RecordPoll()
			v.startFetch()
		}
	}
}

// Refresh issues an out-of-band fetch through the same sequence gate
func (v *CoinListView) Refresh() error {
	v.mu.RLock()
	mounted := v.mounted
	v.mu.RUnlock()
	if !mounted {
		return ErrNotMounted
	}
	v.startFetch()
	return nil
}

func (v *CoinListView) startFetch() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	ctx := v.fetchCtx
	seq := v.issued.Add(1)
	v.launching.Add(1)
	v.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				v.logger.Error("Coin list fetch panic recovered", slog.Any("panic", r))
			}
		}()

		// Unmount waits on launching; a view unmounted before this check issues no request
		v.mu.RLock()
		mounted := v.mounted
		v.mu.RUnlock()
		v.launching.Done()
		if !mounted {
			return
		}

		coins, err := v.source.FetchCoinList(ctx)
		v.apply(seq, coins, err)
	}()
}

// apply stores a fetch result if seq is still the latest issued number
func (v *CoinListView) apply(seq uint64, coins []domain.CoinSummary, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.mounted {
		v.logger.Debug("Dropping response after unmount", slog.Uint64("seq", seq))
		return
	}
	if latest := v.issued.Load(); seq != latest {
		v.metrics.RecordStale()
		v.logger.Debug("Dropping stale response", slog.Uint64("seq", seq), slog.Uint64("latest", latest))
		return
	}

	v.appliedAt = seq
	if err != nil {
		v.state = StateError
		v.errMsg = msgListFailed
		v.logger.Warn("Coin list fetch failed", slog.Uint64("seq", seq), slog.Any("error", err))
	} else {
		v.state = StateReady
		v.errMsg = ""
		v.coins = coins
		v.updatedAt = time.Now()
		v.logger.Debug("Coin list updated", slog.Uint64("seq", seq), slog.Int("coins", len(coins)))
	}
	v.notifyLocked()
}

// Snapshot returns the current state with the coins filtered by query.
// It never fetches and never changes the stored set.
func (v *CoinListView) Snapshot(query string) ListSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return ListSnapshot{
		State:     v.state,
		Query:     query,
		Coins:     domain.FilterCoins(v.coins, query),
		Total:     len(v.coins),
		Error:     v.errMsg,
		UpdatedAt: v.updatedAt,
		Seq:       v.appliedAt,
	}
}

// Coin returns the summary for id from the last fetched set
func (v *CoinListView) Coin(id string) (domain.CoinSummary, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, c := range v.coins {
		if c.ID == id {
			return c, true
		}
	}
	return domain.CoinSummary{}, false
}

// Subscribe returns a channel signalled after every state change, and a
// cancel func. The channel is closed on unmount.
func (v *CoinListView) Subscribe() (<-chan struct{}, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextSub
	v.nextSub++
	ch := make(chan struct{}, 1)
	if !v.mounted {
		close(ch)
		return ch, func() {}
	}
	v.subs[id] = ch

	return ch, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if c, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(c)
		}
	}
}

// notifyLocked signals subscribers without blocking. Caller holds v.mu.
func (v *CoinListView) notifyLocked() {
	for _, ch := range v.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Unmount stops the poll timer and waits for the loop to exit. No request is
// started after it returns; responses still in flight are discarded when they
// arrive. Safe to call twice.
func (v *CoinListView) Unmount() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = false
	cancel := v.cancel
	for id, ch := range v.subs {
		delete(v.subs, id)
		close(ch)
	}
	v.mu.Unlock()

	cancel()
	v.wg.Wait()
	v.launching.Wait()
}

// Mounted reports whether the view is polling
func (v *CoinListView) Mounted() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mounted
}
