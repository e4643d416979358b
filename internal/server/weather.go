package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"claydir/internal/config"
	"claydir/internal/logger"
)

// WeatherWidget is the independent masthead widget. It fetches on its own
// schedule, caches the last good reading, and absorbs every failure: the
// directory renders identically whether or not weather is available.
type WeatherWidget struct {
	url    string
	label  string
	ttl    time.Duration
	client *http.Client
	log    *logger.Logger

	mu        sync.Mutex
	cached    string
	fetchedAt time.Time
	fetching  bool
}

// weatherResponse matches the current-conditions shape of the configured
// endpoint (open-meteo style).
type weatherResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
}

// NewWeatherWidget creates the widget from its config section.
func NewWeatherWidget(cfg config.WeatherConfig, log *logger.Logger) *WeatherWidget {
	return &WeatherWidget{
		url:   cfg.URL,
		label: cfg.Label,
		ttl:   cfg.TTL(),
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

// Current returns the cached weather line, possibly empty. A stale cache
// triggers a background refresh; the caller is never blocked and never
// sees an error.
func (w *WeatherWidget) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if time.Since(w.fetchedAt) > w.ttl && !w.fetching {
		w.fetching = true

		go w.refresh()
	}

	return w.cached
}

// refresh fetches the endpoint and updates the cache. Failures are logged
// at debug level and otherwise ignored.
func (w *WeatherWidget) refresh() {
	line, err := w.fetch()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.fetching = false
	w.fetchedAt = time.Now()

	if err != nil {
		w.log.Debug("weather fetch failed", "error", err)

		return
	}

	w.cached = line
}

func (w *WeatherWidget) fetch() (string, error) {
	resp, err := w.client.Get(w.url)
	if err != nil {
		return "", fmt.Errorf("weather request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather endpoint returned status %d", resp.StatusCode)
	}

	var parsed weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode weather response: %w", err)
	}

	if w.label != "" {
		return fmt.Sprintf("%s %.0f°", w.label, parsed.CurrentWeather.Temperature), nil
	}

	return fmt.Sprintf("%.0f°", parsed.CurrentWeather.Temperature), nil
}
