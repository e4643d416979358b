// Package feed fetches and parses the published tabular feed.
package feed

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"claydir/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// maxFeedBytes caps how much of the feed body is read. A published
// spreadsheet of a few hundred rows is far below this.
const maxFeedBytes = 4 << 20

// Fetcher retrieves the raw feed with config-driven retry logic.
type Fetcher struct {
	client      *http.Client
	retryPolicy *config.RetryPolicy
}

// NewFetcher creates a fetcher with the default retry policy.
func NewFetcher() *Fetcher {
	return NewFetcherWithConfig(&config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    500,
		MaxDelayMs:        30000,
		BackoffMultiplier: 2.0,
		TimeoutSec:        30,
	})
}

// NewFetcherWithConfig creates a fetcher with a custom retry policy.
func NewFetcherWithConfig(retryPolicy *config.RetryPolicy) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy: retryPolicy,
	}
}

// FetchWithMetrics returns (content, statusCode, totalDuration, error).
func (f *Fetcher) FetchWithMetrics(url string) (string, int, time.Duration, error) {
	var lastErr error

	var lastStatusCode int

	totalDuration := time.Duration(0)

	for attempt := 1; attempt <= f.retryPolicy.MaxAttempts; attempt++ {
		startTime := time.Now()

		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)

			continue
		}

		req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

		resp, err := f.client.Do(req)
		duration := time.Since(startTime)
		totalDuration += duration

		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, f.retryPolicy.MaxAttempts, err)

			f.backoff(attempt)

			continue
		}

		lastStatusCode = resp.StatusCode

		if resp.StatusCode != http.StatusOK {
			drainAndClose(resp.Body)

			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			// Only retry on temporary failures
			if !isRetryableStatus(resp.StatusCode) {
				return "", resp.StatusCode, totalDuration, lastErr
			}

			f.backoff(attempt)

			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
		drainAndClose(resp.Body)

		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)

			continue
		}

		return string(body), resp.StatusCode, totalDuration, nil
	}

	return "", lastStatusCode, totalDuration, lastErr
}

// Fetch fetches and returns content from the given URL.
func (f *Fetcher) Fetch(url string) (string, error) {
	content, _, _, err := f.FetchWithMetrics(url)

	return content, err
}

// ReadLocalFile reads feed content from a local file path.
func (f *Fetcher) ReadLocalFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return string(content), nil
}

// backoff sleeps for the policy delay before the next attempt.
func (f *Fetcher) backoff(attempt int) {
	if attempt >= f.retryPolicy.MaxAttempts {
		return
	}

	if delay := f.retryPolicy.GetRetryDelay(attempt); delay > 0 {
		time.Sleep(delay)
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable: // 503
		return true
	case http.StatusGatewayTimeout: // 504
		return true
	case http.StatusTooManyRequests: // 429
		return true
	case http.StatusRequestTimeout: // 408
		return true
	}

	return false
}
