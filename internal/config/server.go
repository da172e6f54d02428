// Package config loads the records API configuration.
//
// Values come from three layers, later layers winning:
//
//  1. DefaultServerConfig
//  2. an optional YAML file named by SCROLLFEED_CONFIG
//  3. environment variables
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"scrollfeed/internal/common/pagination"
	envconfig "scrollfeed/pkg/config"

	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable holding the config file path.
const FileEnv = "SCROLLFEED_CONFIG"

// MaxCorpusSize bounds the seeded corpus.
const MaxCorpusSize = 1_000_000

// PaginationConfig mirrors pagination.Config for the file format.
type PaginationConfig struct {
	DefaultPage  int `yaml:"default_page"`
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// ServerConfig holds the records API settings.
type ServerConfig struct {
	HTTPAddr           string           `yaml:"http_addr"`
	CorpusSize         int              `yaml:"corpus_size"`
	ProviderLatency    time.Duration    `yaml:"provider_latency"`
	RefreshInsertCount int              `yaml:"refresh_insert_count"`
	RequestTimeout     time.Duration    `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration    `yaml:"shutdown_timeout"`
	MaxBodyBytes       int64            `yaml:"max_body_bytes"`
	TracingEnabled     bool             `yaml:"tracing_enabled"`
	Pagination         PaginationConfig `yaml:"pagination"`
}

// DefaultServerConfig returns the built-in defaults.
func DefaultServerConfig() ServerConfig {
	p := pagination.DefaultConfig()
	return ServerConfig{
		HTTPAddr:           ":8080",
		CorpusSize:         200,
		ProviderLatency:    500 * time.Millisecond,
		RefreshInsertCount: 20,
		RequestTimeout:     10 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		MaxBodyBytes:       1 << 20,
		TracingEnabled:     true,
		Pagination: PaginationConfig{
			DefaultPage:  p.DefaultPage,
			DefaultLimit: p.DefaultLimit,
			MaxLimit:     p.MaxLimit,
		},
	}
}

// LoadServerConfig applies the file named by SCROLLFEED_CONFIG (if set) and then the
// environment over the defaults, and validates the result.
func LoadServerConfig() (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path := os.Getenv(FileEnv); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadFile decodes the YAML file at path into cfg. Keys absent from the file keep
// their current values; unknown keys are an error.
func LoadFile(path string, cfg *ServerConfig) error {
	// #nosec G304 -- path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *ServerConfig) applyEnv() {
	c.HTTPAddr = envconfig.GetEnvString("HTTP_ADDR", c.HTTPAddr)
	c.CorpusSize = envconfig.GetEnvInt("CORPUS_SIZE", c.CorpusSize)
	c.ProviderLatency = envconfig.GetEnvDuration("PROVIDER_LATENCY", c.ProviderLatency)
	c.RefreshInsertCount = envconfig.GetEnvInt("REFRESH_INSERT_COUNT", c.RefreshInsertCount)
	c.RequestTimeout = envconfig.GetEnvDuration("REQUEST_TIMEOUT", c.RequestTimeout)
	c.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.TracingEnabled = envconfig.GetEnvBool("TRACING_ENABLED", c.TracingEnabled)
	c.Pagination.DefaultPage = envconfig.GetEnvInt("PAGINATION_DEFAULT_PAGE", c.Pagination.DefaultPage)
	c.Pagination.DefaultLimit = envconfig.GetEnvInt("PAGINATION_DEFAULT_LIMIT", c.Pagination.DefaultLimit)
	c.Pagination.MaxLimit = envconfig.GetEnvInt("PAGINATION_MAX_LIMIT", c.Pagination.MaxLimit)
}

// Validate reports every invalid field at once.
func (c ServerConfig) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if err := envconfig.ValidateIntRange("corpus_size", c.CorpusSize, 0, MaxCorpusSize); err != nil {
		errs = append(errs, err)
	}
	if err := envconfig.ValidateNonNegativeDuration(c.ProviderLatency); err != nil {
		errs = append(errs, fmt.Errorf("provider_latency: %w", err))
	}
	if c.RefreshInsertCount < 0 {
		errs = append(errs, fmt.Errorf("refresh_insert_count must be non-negative, got %d", c.RefreshInsertCount))
	}
	if err := envconfig.ValidateNonNegativeDuration(c.RequestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("request_timeout: %w", err))
	}
	if err := envconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("shutdown_timeout: %w", err))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes))
	}
	if c.Pagination.DefaultPage < 1 {
		errs = append(errs, fmt.Errorf("pagination.default_page must be at least 1, got %d", c.Pagination.DefaultPage))
	}
	if c.Pagination.MaxLimit < 1 {
		errs = append(errs, fmt.Errorf("pagination.max_limit must be at least 1, got %d", c.Pagination.MaxLimit))
	} else if err := envconfig.ValidateIntRange("pagination.default_limit", c.Pagination.DefaultLimit, 1, c.Pagination.MaxLimit); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PaginationConfig converts the pagination section for the HTTP layer.
func (c ServerConfig) PaginationConfig() pagination.Config {
	return pagination.Config{
		DefaultPage:  c.Pagination.DefaultPage,
		DefaultLimit: c.Pagination.DefaultLimit,
		MaxLimit:     c.Pagination.MaxLimit,
	}
}
