package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"coinboard/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultUserAgent is a browser-like user agent string; the public API throttles bare clients harder
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultAPIBaseURL is the CoinGecko v3 REST root
	DefaultAPIBaseURL = "https://api.coingecko.com/api/v3"

	// SupportedVsCurrency is the only quote currency the formatters label correctly
	SupportedVsCurrency = "usd"
)

// Config holds every setting of the dashboard.
// Values from the YAML file are applied on top of DefaultConfig and may be
// overridden by environment variables.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		BaseURL    string `yaml:"base_url"`
		TimeoutMS  int    `yaml:"timeout_ms"`
		VsCurrency string `yaml:"vs_currency"`
		PerPage    int    `yaml:"per_page"`
	} `yaml:"api"`

	UI struct {
		PollIntervalSec int    `yaml:"poll_interval_sec"`
		DefaultTab      string `yaml:"default_tab"`
	} `yaml:"ui"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Icons struct {
		Dir  string `yaml:"dir"`
		Size int    `yaml:"size"`
	} `yaml:"icons"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "coinboard"
	cfg.App.Version = "0.1.0"
	cfg.API.BaseURL = DefaultAPIBaseURL
	cfg.API.TimeoutMS = 5000
	cfg.API.VsCurrency = SupportedVsCurrency
	cfg.API.PerPage = 100
	cfg.UI.PollIntervalSec = 60
	cfg.UI.DefaultTab = "description"
	cfg.Server.Addr = "127.0.0.1:8080"
	cfg.Icons.Size = 32
	cfg.Logging.Level = "info"
	cfg.Logging.Dir = "logs"
	return &cfg
}

// LoadConfig reads the YAML file at path over the defaults.
// A missing file yields an error wrapping domain.ErrConfigNotFound.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrConfigNotFound)
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return &domain.ConfigError{Field: "api.base_url", Err: fmt.Errorf("not an http(s) URL: %q", c.API.BaseURL)}
	}
	if c.API.TimeoutMS <= 0 {
		return &domain.ConfigError{Field: "api.timeout_ms", Err: errors.New("must be positive")}
	}
	// Prices are rendered with a dollar sign
	if c.API.VsCurrency != SupportedVsCurrency {
		return &domain.ConfigError{Field: "api.vs_currency", Err: fmt.Errorf("only %q is supported, got %q", SupportedVsCurrency, c.API.VsCurrency)}
	}
	if c.API.PerPage <= 0 || c.API.PerPage > 250 {
		return &domain.ConfigError{Field: "api.per_page", Err: fmt.Errorf("must be in 1..250, got %d", c.API.PerPage)}
	}
	if c.UI.PollIntervalSec <= 0 {
		return &domain.ConfigError{Field: "ui.poll_interval_sec", Err: errors.New("must be positive")}
	}
	if c.Server.Addr == "" {
		return &domain.ConfigError{Field: "server.addr", Err: errors.New("required")}
	}
	if c.Icons.Size < 0 {
		return &domain.ConfigError{Field: "icons.size", Err: errors.New("must not be negative")}
	}
	return nil
}

// PollInterval returns the list refresh period
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.UI.PollIntervalSec) * time.Second
}

// RequestTimeout returns the per-request HTTP timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}

// ApplyEnv replaces settings with environment variables when set
func (c *Config) ApplyEnv() {
	if v := os.Getenv("COINBOARD_API_BASE_URL"); v != "" {
		c.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("COINBOARD_LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("COINBOARD_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
