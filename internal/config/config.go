// Package config provides configuration management for the directory service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingFeedSource        = errors.New("feed.url or feed.file is required")
	ErrInvalidMaxAttempts       = errors.New("feed.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("feed.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("feed.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("feed.retry.timeout_sec must be at least 1")
	ErrMissingPlaceholder       = errors.New("images.placeholder is required")
	ErrInvalidBasePath          = errors.New("images.base_path must end with '/' when set")
	ErrMissingListenAddr        = errors.New("server.listen_addr is required")
	ErrInvalidRefreshInterval   = errors.New("directory.refresh_interval_min must be non-negative")
	ErrInvalidWeatherTTL        = errors.New("weather.cache_ttl_min must be at least 1 when weather is enabled")
	ErrMissingWeatherURL        = errors.New("weather.url is required when weather is enabled")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete directory service configuration.
type Config struct {
	Feed      FeedConfig      `yaml:"feed"`
	Images    ImagesConfig    `yaml:"images"`
	Directory DirectoryConfig `yaml:"directory"`
	Server    ServerConfig    `yaml:"server"`
	Weather   WeatherConfig   `yaml:"weather"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// FeedConfig locates the published tabular feed.
type FeedConfig struct {
	URL   string      `yaml:"url"`
	File  string      `yaml:"file"`
	Retry RetryPolicy `yaml:"retry"`
}

// IsLocalFile returns true if the feed is read from a local file.
func (f *FeedConfig) IsLocalFile() bool {
	return f.File != ""
}

// Source returns the file path if local, or URL if remote.
func (f *FeedConfig) Source() string {
	if f.IsLocalFile() {
		return f.File
	}

	return f.URL
}

// RetryPolicy defines fetch retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// ImagesConfig defines image resolution behavior.
type ImagesConfig struct {
	Placeholder string `yaml:"placeholder"`
	BasePath    string `yaml:"base_path"`
}

// DirectoryConfig defines directory presentation behavior.
type DirectoryConfig struct {
	Title              string            `yaml:"title"`
	DefaultTown        string            `yaml:"default_town"`
	CategoryGlyphs     map[string]string `yaml:"category_glyphs"`
	DefaultGlyph       string            `yaml:"default_glyph"`
	RefreshIntervalMin int               `yaml:"refresh_interval_min"`
}

// ServerConfig defines the HTTP server behavior.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// WeatherConfig defines the optional masthead weather widget.
type WeatherConfig struct {
	Enabled     bool   `yaml:"enabled"`
	URL         string `yaml:"url"`
	Label       string `yaml:"label"`
	CacheTTLMin int    `yaml:"cache_ttl_min"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FromSource builds a minimal validated config from a feed URL or local
// file, for command-line use without a config file.
func FromSource(url, file string) (*Config, error) {
	cfg := &Config{}
	cfg.Feed.URL = url
	cfg.Feed.File = file
	cfg.Images.Placeholder = "/static/placeholder.png"
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills unset optional fields with working values.
func (c *Config) applyDefaults() {
	if c.Feed.Retry.MaxAttempts == 0 {
		c.Feed.Retry = RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		}
	}

	if c.Directory.Title == "" {
		c.Directory.Title = "Business Directory"
	}

	if c.Directory.DefaultTown == "" {
		c.Directory.DefaultTown = "Unknown"
	}

	if c.Directory.DefaultGlyph == "" {
		c.Directory.DefaultGlyph = "📁"
	}

	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}

	if c.Weather.Enabled && c.Weather.CacheTTLMin == 0 {
		c.Weather.CacheTTLMin = 15
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Feed.URL == "" && c.Feed.File == "" {
		return ErrMissingFeedSource
	}

	// Validate retry policy
	if c.Feed.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Feed.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Feed.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Feed.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	// Validate image config
	if c.Images.Placeholder == "" {
		return ErrMissingPlaceholder
	}

	if c.Images.BasePath != "" && !strings.HasSuffix(c.Images.BasePath, "/") {
		return ErrInvalidBasePath
	}

	if c.Server.ListenAddr == "" {
		return ErrMissingListenAddr
	}

	if c.Directory.RefreshIntervalMin < 0 {
		return ErrInvalidRefreshInterval
	}

	// Validate weather widget config
	if c.Weather.Enabled {
		if c.Weather.URL == "" {
			return ErrMissingWeatherURL
		}

		if c.Weather.CacheTTLMin < 1 {
			return ErrInvalidWeatherTTL
		}
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// RefreshInterval returns the store refresh interval, or zero when refresh
// is disabled.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Directory.RefreshIntervalMin) * time.Minute
}

// TTL returns the weather cache lifetime.
func (w *WeatherConfig) TTL() time.Duration {
	return time.Duration(w.CacheTTLMin) * time.Minute
}

// Glyph returns the display glyph for a canonical category name.
func (c *Config) Glyph(category string) string {
	if g, ok := c.Directory.CategoryGlyphs[category]; ok {
		return g
	}

	return c.Directory.DefaultGlyph
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Feed: %s, Listen: %s, Glyphs: %d}",
		c.Feed.Source(),
		c.Server.ListenAddr,
		len(c.Directory.CategoryGlyphs),
	)
}
