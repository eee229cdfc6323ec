package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Overlap policies for the market timeline.
const (
	OverlapAllow = "allow"
	OverlapSkip  = "skip"
)

// Config holds all application configuration.
type Config struct {
	Providers struct {
		CoinCapURL    string `yaml:"coincap_url"`
		CoinCapAPIKey string `yaml:"coincap_api_key"`
		BinanceURL    string `yaml:"binance_url"`
	} `yaml:"providers"`
	Server struct {
		Listen         string   `yaml:"listen"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Schedule struct {
		Overlap string `yaml:"overlap"`
	} `yaml:"schedule"`
	Display struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"display"`
	Logging struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file yields the defaults.
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

	// .env is optional; real environment variables take precedence over it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("COINCAP_BASE_URL"); v != "" {
		cfg.Providers.CoinCapURL = v
	}
	if v := os.Getenv("COINCAP_API_KEY"); v != "" {
		cfg.Providers.CoinCapAPIKey = v
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.Providers.BinanceURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("OVERLAP_POLICY"); v != "" {
		cfg.Schedule.Overlap = v
	}
	if v := os.Getenv("DISPLAY_TIMEZONE"); v != "" {
		cfg.Display.Timezone = v
	}

	// Defaults
	if cfg.Providers.CoinCapURL == "" {
		cfg.Providers.CoinCapURL = "https://api.coincap.io"
	}
	if cfg.Providers.BinanceURL == "" {
		cfg.Providers.BinanceURL = "https://api.binance.com"
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:8080"}
	}
	if cfg.Schedule.Overlap == "" {
		cfg.Schedule.Overlap = OverlapAllow
	}
	if cfg.Display.Timezone == "" {
		cfg.Display.Timezone = "Local"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = "logs/cryptoboard.log"
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 10
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 3
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = 28
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"providers.coincap_url": c.Providers.CoinCapURL,
		"providers.binance_url": c.Providers.BinanceURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
		}
	}
	for _, o := range c.Server.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("server.allowed_origins: %q must start with http:// or https://", o)
		}
	}
	switch c.Schedule.Overlap {
	case OverlapAllow, OverlapSkip:
	default:
		return fmt.Errorf("schedule.overlap must be %q or %q, got %q", OverlapAllow, OverlapSkip, c.Schedule.Overlap)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("display.timezone: %w", err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// Location resolves the display timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" || c.Display.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Display.Timezone)
}
