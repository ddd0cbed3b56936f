// Package config loads the bridge configuration from a YAML file with
// environment variable overrides. A .env file, when present, is loaded
// before the overrides are applied.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration for the bridge service.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig holds the HTTP surface settings.
type ServiceConfig struct {
	Name string `yaml:"name" env:"BRIDGE_NAME"`
	Port int    `yaml:"port" env:"BRIDGE_PORT"`
	// PublicURL is the externally visible base URL used in every link the
	// bridge emits, e.g. "https://api.example.com". Link building never
	// inspects the inbound Host header.
	PublicURL       string `yaml:"public_url" env:"BRIDGE_PUBLIC_URL"`
	Debug           bool   `yaml:"debug" env:"BRIDGE_DEBUG"`
	DefaultPageSize int    `yaml:"default_page_size" env:"BRIDGE_DEFAULT_PAGE_SIZE"`
	MaxPageSize     int    `yaml:"max_page_size" env:"BRIDGE_MAX_PAGE_SIZE"`
}

// Address returns the listen address in :port form.
func (c *ServiceConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CatalogConfig holds the upstream Catalog Service connection settings.
type CatalogConfig struct {
	URL      string        `yaml:"url" env:"CATALOG_URL"`
	Timeout  time.Duration `yaml:"timeout" env:"CATALOG_TIMEOUT"`
	CloudTag string        `yaml:"cloud_tag" env:"CATALOG_CLOUD_TAG"`
	// Token, when set, is sent as a bearer token on every upstream call.
	Token string `yaml:"token" env:"CATALOG_TOKEN"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "stac-bridge"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 3000
	}
	if cfg.Service.PublicURL == "" {
		cfg.Service.PublicURL = fmt.Sprintf("http://localhost:%d", cfg.Service.Port)
	}
	if cfg.Service.DefaultPageSize == 0 {
		cfg.Service.DefaultPageSize = 10
	}
	if cfg.Service.MaxPageSize == 0 {
		cfg.Service.MaxPageSize = 100
	}
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout = 30 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Load reads the YAML file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := loadYAML[Config](path)
	if err != nil {
		return nil, err
	}
	setDefaults(cfg)
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot start
// with.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return &ValidationError{Field: "service.port", Message: "must be between 1 and 65535"}
	}
	if c.Catalog.URL == "" {
		return &ValidationError{Field: "catalog.url", Message: "is required"}
	}
	if u, err := url.Parse(c.Catalog.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "catalog.url", Message: "must be an absolute URL"}
	}
	if c.Service.DefaultPageSize > c.Service.MaxPageSize {
		return &ValidationError{Field: "service.default_page_size", Message: "must not exceed max_page_size"}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "logging.level", Message: "must be one of: debug, info, warn, error"}
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return &ValidationError{Field: "logging.format", Message: "must be one of: json, console"}
	}
	return nil
}

// ValidationError reports a configuration field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Message)
}
