// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	FDC      FDCConfig
	Scrape   ScrapeConfig
	Cache    CacheConfig
	Logging  LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string `envconfig:"PORT" default:"8080"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:8081"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" required:"true"`
}

// FDCConfig holds USDA FoodData Central API configuration.
type FDCConfig struct {
	APIKey  string        `envconfig:"FDC_API_KEY"`
	Timeout time.Duration `envconfig:"FDC_TIMEOUT" default:"10s"`
}

// ScrapeConfig holds recipe page fetch configuration.
type ScrapeConfig struct {
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
}

// CacheConfig holds result cache configuration.
type CacheConfig struct {
	TTL time.Duration `envconfig:"CACHE_TTL" default:"1h"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
