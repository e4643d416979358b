// Package ingest orchestrates the feed pipeline: fetch, parse, normalize,
// and load into the directory store. It owns the loading/failed/empty
// status the grid handler renders from.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"claydir/internal/config"
	"claydir/internal/feed"
	"claydir/internal/logger"
	"claydir/internal/models"
	"claydir/internal/normalizer"
	"claydir/internal/store"
)

// Status of the working set as seen by the presentation layer.
type Status int

// Ingestion states.
const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
	StatusEmpty
)

// ErrNoUsableRecords indicates a feed that parsed but yielded zero records
// with a usable name. Distinct from a fetch failure.
var ErrNoUsableRecords = errors.New("feed contains no usable records")

// Controller runs the ingestion pipeline and tracks its outcome.
type Controller struct {
	cfg        *config.Config
	fetcher    *feed.Fetcher
	normalizer *normalizer.Normalizer
	store      *store.Store
	log        *logger.Logger

	mu     sync.RWMutex
	status Status
	err    error
}

// NewController wires the pipeline against the given store.
func NewController(cfg *config.Config, st *store.Store, log *logger.Logger) *Controller {
	return &Controller{
		cfg:        cfg,
		fetcher:    feed.NewFetcherWithConfig(&cfg.Feed.Retry),
		normalizer: normalizer.NewNormalizer(cfg.Directory.DefaultTown),
		store:      st,
		log:        log,
		status:     StatusLoading,
	}
}

// Status returns the current ingestion status and, for StatusFailed, the
// causing error.
func (c *Controller) Status() (Status, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status, c.err
}

// Run executes one full ingestion pass. A successful pass replaces the
// store's working set wholesale; a failed pass leaves any previous set in
// place and records the failure.
func (c *Controller) Run(ctx context.Context) error {
	startTime := time.Now()

	records, rejected, err := c.ingest(ctx)
	if err != nil {
		c.setStatus(StatusFailed, err)
		c.log.Error("ingestion failed", "source", c.cfg.Feed.Source(), "error", err)

		return err
	}

	c.store.Load(records)

	if len(records) == 0 {
		c.setStatus(StatusEmpty, nil)
		c.log.Warn("feed yielded no usable records", "source", c.cfg.Feed.Source(), "rejected", rejected)

		return ErrNoUsableRecords
	}

	c.setStatus(StatusReady, nil)
	c.log.Info("directory loaded",
		"records", len(records),
		"rejected", rejected,
		"duration", time.Since(startTime),
	)

	return nil
}

// RunPeriodic runs an initial pass and then refreshes at the configured
// interval until the context is cancelled. With refresh disabled it only
// runs the initial pass.
func (c *Controller) RunPeriodic(ctx context.Context) {
	_ = c.Run(ctx)

	interval := c.cfg.RefreshInterval()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Run(ctx)
		}
	}
}

// ingest performs fetch, parse, and normalize without touching the store.
func (c *Controller) ingest(ctx context.Context) ([]models.BusinessRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("ingestion cancelled: %w", err)
	}

	var content string

	var err error

	if c.cfg.Feed.IsLocalFile() {
		content, err = c.fetcher.ReadLocalFile(c.cfg.Feed.File)
	} else {
		content, err = c.fetcher.Fetch(c.cfg.Feed.URL)
	}

	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch feed: %w", err)
	}

	rows, err := feed.ParseCSV(content)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse feed: %w", err)
	}

	records, rejected := c.normalizer.NormalizeAll(rows)

	return records, rejected, nil
}

func (c *Controller) setStatus(status Status, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
	c.err = err
}
