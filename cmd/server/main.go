// Package main runs the business directory web server: it ingests the
// published feed into the in-memory store and serves the card grid and
// profile pages.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claydir/internal/config"
	"claydir/internal/ingest"
	"claydir/internal/logger"
	"claydir/internal/server"
	"claydir/internal/store"
)

const defaultConfigPath = "configs/directory.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	feedURL := flag.String("feed-url", "", "Feed CSV URL (overrides config)")
	feedFile := flag.String("feed-file", "", "Local feed CSV file (overrides config)")
	logLevel := flag.String("log-level", "", "Log level (overrides config)")

	flag.Parse()

	cfg, err := loadConfig(*configFile, *feedURL, *feedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Server.ListenAddr = *addr
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log := logger.NewLoggerWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	log.Info("🚀 Starting directory server")
	log.Info(fmt.Sprintf("📍 Feed: %s", cfg.Feed.Source()))
	log.Info(fmt.Sprintf("🌐 Listening on %s", cfg.Server.ListenAddr))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st := store.NewStore()
	ctrl := ingest.NewController(cfg, st, log)

	// The ingestion fetch is the only suspend point; handlers render a
	// loading message until the controller reports an outcome.
	go ctrl.RunPeriodic(ctx)

	srv := server.New(cfg, st, ctrl, log)

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(fmt.Sprintf("❌ Server failed: %v", err))
		os.Exit(1)
	}

	log.Info("👋 Server stopped")
}

// loadConfig loads the YAML config, falling back to the default location,
// or builds a minimal config from CLI flags when no file is available.
func loadConfig(configFile, feedURL, feedFile string) (*config.Config, error) {
	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	if path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}

		if feedURL != "" {
			cfg.Feed.URL = feedURL
			cfg.Feed.File = ""
		}

		if feedFile != "" {
			cfg.Feed.File = feedFile
		}

		return cfg, nil
	}

	if feedURL == "" && feedFile == "" {
		return nil, errors.New("provide -config, or -feed-url/-feed-file, or place " + defaultConfigPath + " in the working directory")
	}

	return config.FromSource(feedURL, feedFile)
}
