package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"coinboard/internal/domain"
	"coinboard/internal/infra"
	"coinboard/internal/infra/coingecko"
	"coinboard/internal/view"
	"coinboard/internal/web"
)

const shutdownTimeout = 5 * time.Second

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config     *infra.Config
	Metrics    *infra.Metrics
	Source     domain.MarketDataSource
	Downloader *infra.IconDownloader
	List       *view.CoinListView
	Server     *http.Server
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration and builds every component.
// A missing config file falls back to the built-in defaults.
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping coinboard...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if errors.Is(err, domain.ErrConfigNotFound) {
		slog.Warn("Config file not found, using defaults", slog.String("path", configPath))
		cfg = infra.DefaultConfig()
		cfg.ApplyEnv()
		err = cfg.Validate()
	}
	if err != nil {
		return err
	}
	b.Config = cfg

	// 2. Setup Logger
	slog.SetDefault(infra.NewLogger(cfg))

	// 3. Market data client
	b.Metrics = &infra.Metrics{}
	b.Source = coingecko.NewClient(cfg, b.Metrics)
	slog.Info("✅ Market data client ready", slog.String("base_url", cfg.API.BaseURL))

	// 4. Icon Downloader
	downloader, err := infra.NewIconDownloader(cfg.Icons.Dir, cfg.Icons.Size)
	if err != nil {
		return err
	}
	b.Downloader = downloader
	slog.Info("✅ Icon downloader ready")

	// 5. Views and HTTP surface
	b.List = view.NewCoinListView(b.Source, cfg.PollInterval(), b.Metrics)
	handler := web.NewHandler(b.List, b.Source, b.Downloader, b.Metrics, cfg.UI.DefaultTab)
	b.Server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           web.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Run mounts the list view and serves HTTP until ctx is cancelled
func (b *Bootstrap) Run(ctx context.Context) error {
	if err := b.List.Mount(ctx); err != nil {
		return fmt.Errorf("failed to mount coin list: %w", err)
	}
	defer b.List.Unmount()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("✅ HTTP server listening", slog.String("addr", b.Server.Addr))
		if err := b.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("👋 Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return b.Server.Shutdown(shutdownCtx)
}
