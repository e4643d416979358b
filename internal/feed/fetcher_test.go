package feed

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"claydir/internal/config"
)

func testRetryPolicy() *config.RetryPolicy {
	return &config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    1,
		MaxDelayMs:        10,
		BackoffMultiplier: 2.0,
		TimeoutSec:        5,
	}
}

func TestFetcher_Fetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("name,town\nAce Hardware,Flora\n"))
	}))
	defer srv.Close()

	fetcher := NewFetcherWithConfig(testRetryPolicy())

	content, err := fetcher.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if content != "name,town\nAce Hardware,Flora\n" {
		t.Errorf("Unexpected content: %q", content)
	}
}

func TestFetcher_Fetch_RetriesOn503(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	fetcher := NewFetcherWithConfig(testRetryPolicy())

	content, err := fetcher.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed after retries: %v", err)
	}

	if content != "ok" {
		t.Errorf("Unexpected content: %q", content)
	}

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestFetcher_Fetch_NoRetryOn404(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewFetcherWithConfig(testRetryPolicy())

	_, err := fetcher.Fetch(srv.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode, got %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 attempt for non-retryable status, got %d", got)
	}
}

func TestFetcher_Fetch_Exhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	fetcher := NewFetcherWithConfig(testRetryPolicy())

	_, err := fetcher.Fetch(srv.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode after exhaustion, got %v", err)
	}
}

func TestFetcher_Fetch_Unreachable(t *testing.T) {
	fetcher := NewFetcherWithConfig(testRetryPolicy())

	_, err := fetcher.Fetch("http://127.0.0.1:1/feed.csv")
	if err == nil {
		t.Fatal("Expected error for unreachable host, got nil")
	}
}

func TestFetcher_ReadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.csv")
	if err := os.WriteFile(path, []byte("name\nAce Hardware\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	fetcher := NewFetcher()

	content, err := fetcher.ReadLocalFile(path)
	if err != nil {
		t.Fatalf("ReadLocalFile failed: %v", err)
	}

	if content != "name\nAce Hardware\n" {
		t.Errorf("Unexpected content: %q", content)
	}
}

func TestFetcher_ReadLocalFile_Missing(t *testing.T) {
	fetcher := NewFetcher()

	if _, err := fetcher.ReadLocalFile("/nonexistent/feed.csv"); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusRequestTimeout, true},
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		if got := isRetryableStatus(tt.status); got != tt.retryable {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", tt.status, got, tt.retryable)
		}
	}
}
