package view

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"coinboard/internal/domain"
)

// Section is a tab of the coin page
type Section string

const (
	SectionDescription Section = "description"
	SectionLinks       Section = "links"
	SectionDeveloper   Section = "developer"
)

// Sections lists the tabs in display order
var Sections = []Section{SectionDescription, SectionLinks, SectionDeveloper}

// ParseSection maps a tab name to a Section, falling back to def for unknown names
func ParseSection(name string, def Section) Section {
	for _, s := range Sections {
		if string(s) == name {
			return s
		}
	}
	return def
}

// Title returns the heading shown above the tab content
func (s Section) Title() string {
	switch s {
	case SectionLinks:
		return "Links"
	case SectionDeveloper:
		return "Developer Data"
	default:
		return "Description"
	}
}

// DetailSnapshot is the current state of a coin page
type DetailSnapshot struct {
	State State              `json:"state"`
	ID    string             `json:"id"`
	Coin  *domain.CoinDetail `json:"coin,omitempty"`
	Error string             `json:"error,omitempty"`
}

// CoinDetailView holds the record of the coin currently being viewed.
// Navigating to another id discards the previous record and restarts from loading.
type CoinDetailView struct {
	source domain.MarketDataSource
	logger *slog.Logger

	issued atomic.Uint64

	mu     sync.RWMutex
	state  State
	id     string
	coin   *domain.CoinDetail
	errMsg string
	closed bool
}

// NewCoinDetailView creates a detail view with nothing loaded
func NewCoinDetailView(source domain.MarketDataSource) *CoinDetailView {
	return &CoinDetailView{
		source: source,
		logger: slog.Default().With("module", "coin_detail_view"),
		state:  StateLoading,
	}
}

// Navigate loads the coin id, blocking until the single fetch completes.
// A result for an id that has since been superseded by a newer Navigate is dropped.
func (v *CoinDetailView) Navigate(ctx context.Context, id string) DetailSnapshot {
	seq := v.issued.Add(1)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return v.Snapshot()
	}
	v.state = StateLoading
	v.id = id
	v.coin = nil
	v.errMsg = ""
	v.mu.Unlock()

	coin, err := v.source.FetchCoinDetail(ctx, id)

	v.mu.Lock()
	if v.closed || seq != v.issued.Load() {
		v.mu.Unlock()
		v.logger.Debug("Dropping superseded detail response", slog.String("id", id))
		return v.Snapshot()
	}

	switch {
	case err != nil:
		v.state = StateNotFound
		v.errMsg = msgDetailFailed
		v.logger.Warn("Coin detail fetch failed", slog.String("id", id), slog.Any("error", err))
	case coin == nil:
		v.state = StateNotFound
		v.errMsg = msgNotFound
	default:
		v.state = StateReady
		v.coin = coin
	}
	v.mu.Unlock()

	return v.Snapshot()
}

// Snapshot returns the current state
func (v *CoinDetailView) Snapshot() DetailSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return DetailSnapshot{
		State: v.state,
		ID:    v.id,
		Coin:  v.coin,
		Error: v.errMsg,
	}
}

// Close discards the held record and returns to StateLoading; later
// Navigate calls are ignored
func (v *CoinDetailView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.state = StateLoading
	v.coin = nil
	v.errMsg = ""
}
