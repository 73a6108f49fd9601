package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Instrument struct {
		Label   string  `yaml:"label"`
		Symbol  string  `yaml:"symbol"`
		LongKO  float64 `yaml:"long_ko"`
		ShortKO float64 `yaml:"short_ko"`
		Gearing float64 `yaml:"gearing"`
	} `yaml:"instrument"`
	Refresh struct {
		DefaultSeconds int `yaml:"default_seconds"`
		MinSeconds     int `yaml:"min_seconds"`
		MaxSeconds     int `yaml:"max_seconds"`
	} `yaml:"refresh"`
	DataSource struct {
		Provider         string `yaml:"provider"` // "yahoo" or "mock"
		HistoryRange     string `yaml:"history_range"`
		DisableLiveQuote bool   `yaml:"disable_live_quote"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: the defaults reproduce the stock WES setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TICKER_SYMBOL"); v != "" {
		cfg.Instrument.Symbol = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Refresh.DefaultSeconds = n
		}
	}

	// Defaults: the WES Tail Hedge (KOQ) warrant pair
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8051"
	}
	if cfg.Instrument.Label == "" {
		cfg.Instrument.Label = "WES Tail Hedge (KOQ)"
	}
	if cfg.Instrument.Symbol == "" {
		cfg.Instrument.Symbol = "WES.AX"
	}
	if cfg.Instrument.LongKO == 0 {
		cfg.Instrument.LongKO = 60.00
	}
	if cfg.Instrument.ShortKO == 0 {
		cfg.Instrument.ShortKO = 97.14
	}
	if cfg.Instrument.Gearing == 0 {
		cfg.Instrument.Gearing = 73
	}
	if cfg.Refresh.DefaultSeconds == 0 {
		cfg.Refresh.DefaultSeconds = 60
	}
	if cfg.Refresh.MinSeconds == 0 {
		cfg.Refresh.MinSeconds = 10
	}
	if cfg.Refresh.MaxSeconds == 0 {
		cfg.Refresh.MaxSeconds = 300
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.HistoryRange == "" {
		cfg.DataSource.HistoryRange = "6mo"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Instrument.Symbol == "" {
		return fmt.Errorf("instrument.symbol is required")
	}
	if c.Instrument.LongKO <= 0 {
		return fmt.Errorf("instrument.long_ko must be positive")
	}
	if c.Instrument.ShortKO <= 0 {
		return fmt.Errorf("instrument.short_ko must be positive")
	}
	if c.Instrument.Gearing <= 0 {
		return fmt.Errorf("instrument.gearing must be positive")
	}
	if c.Refresh.MinSeconds <= 0 {
		return fmt.Errorf("refresh.min_seconds must be positive")
	}
	if c.Refresh.MaxSeconds < c.Refresh.MinSeconds {
		return fmt.Errorf("refresh.max_seconds must be >= refresh.min_seconds")
	}
	if c.Refresh.DefaultSeconds < c.Refresh.MinSeconds || c.Refresh.DefaultSeconds > c.Refresh.MaxSeconds {
		return fmt.Errorf("refresh.default_seconds must be within [%d, %d]", c.Refresh.MinSeconds, c.Refresh.MaxSeconds)
	}
	if c.DataSource.Provider != "yahoo" && c.DataSource.Provider != "mock" {
		return fmt.Errorf("data_source.provider must be yahoo or mock")
	}
	return nil
}
