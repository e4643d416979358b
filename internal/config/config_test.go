package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
feed:
  url: "https://example.com/directory.csv"
  retry:
    max_attempts: 3
    initial_delay_ms: 100
    max_delay_ms: 5000
    backoff_multiplier: 2.0
    timeout_sec: 30
images:
  placeholder: "https://example.com/placeholder.png"
  base_path: "https://images.example.com/"
directory:
  title: "Test Directory"
  default_town: "Unknown"
  category_glyphs:
    Dining: "🍔"
    Retail: "🛍️"
server:
  listen_addr: ":8080"
logging:
  level: "info"
  format: "text"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg == nil {
		t.Fatal("Expected config, got nil")
	}

	if cfg.Feed.URL != "https://example.com/directory.csv" {
		t.Errorf("Unexpected feed URL: %s", cfg.Feed.URL)
	}

	if cfg.Directory.Title != "Test Directory" {
		t.Errorf("Expected title 'Test Directory', got '%s'", cfg.Directory.Title)
	}

	if len(cfg.Directory.CategoryGlyphs) != 2 {
		t.Errorf("Expected 2 glyphs, got %d", len(cfg.Directory.CategoryGlyphs))
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	configPath := createTempConfigFile(t, `
feed:
  url: "https://example.com/directory.csv"
images:
  placeholder: "https://example.com/placeholder.png"
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Feed.Retry.MaxAttempts != 3 {
		t.Errorf("Expected default max_attempts 3, got %d", cfg.Feed.Retry.MaxAttempts)
	}

	if cfg.Directory.DefaultTown != "Unknown" {
		t.Errorf("Expected default town 'Unknown', got '%s'", cfg.Directory.DefaultTown)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Expected default listen addr ':8080', got '%s'", cfg.Server.ListenAddr)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level 'info', got '%s'", cfg.Logging.Level)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Feed.URL = "https://example.com/feed.csv"
		cfg.Images.Placeholder = "https://example.com/p.png"
		cfg.applyDefaults()

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing feed source",
			mutate:  func(c *Config) { c.Feed.URL = "" },
			wantErr: ErrMissingFeedSource,
		},
		{
			name:    "bad max attempts",
			mutate:  func(c *Config) { c.Feed.Retry.MaxAttempts = 0 },
			wantErr: ErrInvalidMaxAttempts,
		},
		{
			name:    "negative initial delay",
			mutate:  func(c *Config) { c.Feed.Retry.InitialDelayMs = -1 },
			wantErr: ErrInvalidInitialDelay,
		},
		{
			name:    "bad backoff multiplier",
			mutate:  func(c *Config) { c.Feed.Retry.BackoffMultiplier = 0.5 },
			wantErr: ErrInvalidBackoffMultiplier,
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.Feed.Retry.TimeoutSec = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "missing placeholder",
			mutate:  func(c *Config) { c.Images.Placeholder = "" },
			wantErr: ErrMissingPlaceholder,
		},
		{
			name:    "base path without trailing slash",
			mutate:  func(c *Config) { c.Images.BasePath = "https://images.example.com" },
			wantErr: ErrInvalidBasePath,
		},
		{
			name:    "negative refresh interval",
			mutate:  func(c *Config) { c.Directory.RefreshIntervalMin = -5 },
			wantErr: ErrInvalidRefreshInterval,
		},
		{
			name:    "weather enabled without url",
			mutate:  func(c *Config) { c.Weather.Enabled = true; c.Weather.CacheTTLMin = 10 },
			wantErr: ErrMissingWeatherURL,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRetryPolicy_GetRetryDelay(t *testing.T) {
	rp := &RetryPolicy{
		InitialDelayMs:    100,
		MaxDelayMs:        1000,
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 0},
		{2, 100 * time.Millisecond},
		{3, 200 * time.Millisecond},
		{4, 400 * time.Millisecond},
		{10, 1000 * time.Millisecond}, // capped at max
	}

	for _, tt := range tests {
		if got := rp.GetRetryDelay(tt.attempt); got != tt.expected {
			t.Errorf("GetRetryDelay(%d) = %v, want %v", tt.attempt, got, tt.expected)
		}
	}
}

func TestConfig_Glyph(t *testing.T) {
	cfg := &Config{}
	cfg.Directory.CategoryGlyphs = map[string]string{"Dining": "🍔"}
	cfg.Directory.DefaultGlyph = "📁"

	if got := cfg.Glyph("Dining"); got != "🍔" {
		t.Errorf("Glyph(Dining) = %s, want 🍔", got)
	}

	if got := cfg.Glyph("Unrecognized"); got != "📁" {
		t.Errorf("Glyph(Unrecognized) = %s, want 📁", got)
	}
}

func TestWeatherConfig_TTL(t *testing.T) {
	w := WeatherConfig{CacheTTLMin: 15}

	if got := w.TTL(); got != 15*time.Minute {
		t.Errorf("TTL = %v, want 15m", got)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.SaveConfig(outPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	reloaded, err := LoadConfig(outPath)
	if err != nil {
		t.Fatalf("LoadConfig of saved config failed: %v", err)
	}

	if reloaded.Feed.URL != cfg.Feed.URL {
		t.Errorf("Round-trip changed feed URL: %s != %s", reloaded.Feed.URL, cfg.Feed.URL)
	}
}
