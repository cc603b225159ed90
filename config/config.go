package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Toll     TollConfig     `yaml:"toll"`
	Holidays HolidayConfig  `yaml:"holidays"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// TollConfig holds the toll calculation parameters.
type TollConfig struct {
	Timezone      string        `yaml:"timezone"`
	TollFreeMonth int           `yaml:"toll_free_month"`
	DailyCapSek   int64         `yaml:"daily_cap_sek"`
	WindowMinutes int           `yaml:"window_minutes"`
	Window        time.Duration `yaml:"-"` // Derived from WindowMinutes
	TariffPath    string        `yaml:"tariff_path"`
}

// HolidayConfig holds the public-holiday API client configuration.
type HolidayConfig struct {
	BaseURL           string        `yaml:"base_url"`
	CountryCode       string        `yaml:"country_code"`
	TimeoutSeconds    int           `yaml:"timeout_seconds"`
	Timeout           time.Duration `yaml:"-"` // Derived from TimeoutSeconds
	SuccessTTLHours   int           `yaml:"success_ttl_hours"`
	SuccessTTL        time.Duration `yaml:"-"`
	FailureTTLSeconds int           `yaml:"failure_ttl_seconds"`
	FailureTTL        time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Toll.Timezone == "" {
		cfg.Toll.Timezone = "Europe/Stockholm"
	}
	if cfg.Toll.TollFreeMonth == 0 {
		cfg.Toll.TollFreeMonth = 7
	}
	if cfg.Toll.TollFreeMonth < 1 || cfg.Toll.TollFreeMonth > 12 {
		return nil, fmt.Errorf("toll.toll_free_month must be between 1 and 12, got %d", cfg.Toll.TollFreeMonth)
	}
	if cfg.Toll.DailyCapSek <= 0 {
		cfg.Toll.DailyCapSek = 60
	}
	if cfg.Toll.WindowMinutes <= 0 {
		cfg.Toll.WindowMinutes = 60
	}
	cfg.Toll.Window = time.Duration(cfg.Toll.WindowMinutes) * time.Minute
	if cfg.Toll.TariffPath == "" {
		cfg.Toll.TariffPath = "./config/tariffs.json"
	}

	if cfg.Holidays.BaseURL == "" {
		cfg.Holidays.BaseURL = "https://date.nager.at"
	}
	if cfg.Holidays.CountryCode == "" {
		cfg.Holidays.CountryCode = "SE"
	}
	if cfg.Holidays.TimeoutSeconds <= 0 {
		cfg.Holidays.TimeoutSeconds = 10
	}
	cfg.Holidays.Timeout = time.Duration(cfg.Holidays.TimeoutSeconds) * time.Second
	if cfg.Holidays.SuccessTTLHours <= 0 {
		cfg.Holidays.SuccessTTLHours = 30 * 24
	}
	cfg.Holidays.SuccessTTL = time.Duration(cfg.Holidays.SuccessTTLHours) * time.Hour
	if cfg.Holidays.FailureTTLSeconds <= 0 {
		cfg.Holidays.FailureTTLSeconds = 60
	}
	cfg.Holidays.FailureTTL = time.Duration(cfg.Holidays.FailureTTLSeconds) * time.Second

	if cfg.Database.MaxOpenConns <= 0 {
		log.Printf("database.max_open_conns is not set or invalid; defaulting to 10")
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeMinutes <= 0 {
		cfg.Database.ConnMaxLifetimeMinutes = 30
	}

	return &cfg, nil
}
