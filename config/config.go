// Package config loads quote-desk settings from defaults, an optional YAML
// file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Admin   AdminConfig   `yaml:"admin"`
	Limits  LimitsConfig  `yaml:"limits"`

	// CatalogPath replaces the embedded product catalog when set.
	CatalogPath string `yaml:"catalog_path"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	IdleTimeout     string `yaml:"idle_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// StorageConfig selects the backing stores. Empty values keep everything
// in memory.
type StorageConfig struct {
	RedisAddr     string `yaml:"redis_addr"`
	DatabaseURL   string `yaml:"database_url"`
	QuoteCacheTTL string `yaml:"quote_cache_ttl"`
}

type AdminConfig struct {
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	SessionTTL string `yaml:"session_ttl"`
}

// LimitsConfig bounds login attempts per client address.
type LimitsConfig struct {
	RateLimit  int    `yaml:"rate_limit"`
	RateWindow string `yaml:"rate_window"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			IdleTimeout:     "60s",
			ShutdownTimeout: "10s",
		},
		Storage: StorageConfig{
			QuoteCacheTTL: "10m",
		},
		Admin: AdminConfig{
			Email:      "admin@insurance.com",
			Password:   "admin123",
			SessionTTL: "24h",
		},
		Limits: LimitsConfig{
			RateLimit:  5,
			RateWindow: "1m",
		},
	}
}

// Load builds the configuration. A missing file at path is not an error;
// an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	vars := map[string]*string{
		"PORT":            &c.Server.Port,
		"REDIS_ADDR":      &c.Storage.RedisAddr,
		"DATABASE_URL":    &c.Storage.DatabaseURL,
		"QUOTE_CACHE_TTL": &c.Storage.QuoteCacheTTL,
		"ADMIN_EMAIL":     &c.Admin.Email,
		"ADMIN_PASSWORD":  &c.Admin.Password,
		"SESSION_TTL":     &c.Admin.SessionTTL,
		"RATE_WINDOW":     &c.Limits.RateWindow,
		"CATALOG_PATH":    &c.CatalogPath,
	}
	for key, dst := range vars {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
		c.Limits.RateLimit = n
	}
	return nil
}

// Validate checks that every duration parses and limits are positive.
func (c *Config) Validate() error {
	durations := map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"storage.quote_cache_ttl": c.Storage.QuoteCacheTTL,
		"admin.session_ttl":       c.Admin.SessionTTL,
		"limits.rate_window":      c.Limits.RateWindow,
	}
	for name, v := range durations {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Limits.RateLimit <= 0 {
		return errors.New("limits.rate_limit must be positive")
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		return errors.New("admin credentials must be set")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Server.Port }

// Duration parses a value already checked by Validate.
func Duration(v string) time.Duration {
	d, _ := time.ParseDuration(v)
	return d
}
