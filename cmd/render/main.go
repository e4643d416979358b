// Package main provides the static export command-line tool: it renders
// the directory as plain HTML files (index plus one profile page per
// record) for static hosting.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"claydir/internal/config"
	"claydir/internal/feed"
	"claydir/internal/filter"
	"claydir/internal/images"
	"claydir/internal/normalizer"
	"claydir/internal/render"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	feedURL := flag.String("url", "", "Feed CSV URL (overrides config)")
	feedFile := flag.String("file", "", "Local feed CSV file (overrides config)")
	outputDir := flag.String("output", "site", "Output directory for rendered HTML")

	flag.Parse()

	cfg, err := resolveConfig(*configFile, *feedURL, *feedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Printf("⏳ Fetching feed: %s\n", cfg.Feed.Source())

	startTime := time.Now()
	fetcher := feed.NewFetcherWithConfig(&cfg.Feed.Retry)

	var content string

	if cfg.Feed.IsLocalFile() {
		content, err = fetcher.ReadLocalFile(cfg.Feed.File)
	} else {
		content, err = fetcher.Fetch(cfg.Feed.URL)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Fetch failed: %v\n", err)
		os.Exit(1)
	}

	rows, err := feed.ParseCSV(content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Parse failed: %v\n", err)
		os.Exit(1)
	}

	records, rejected := normalizer.NewNormalizer(cfg.Directory.DefaultTown).NormalizeAll(rows)
	fmt.Printf("✅ Normalized %d records (%d rejected)\n", len(records), rejected)

	resolver := images.NewResolver(cfg.Images.Placeholder, cfg.Images.BasePath)
	builder := render.NewBuilder(resolver, cfg.Glyph)
	renderer := render.NewRenderer(render.StaticProfileHref)

	if err := os.MkdirAll(filepath.Join(*outputDir, "profiles"), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	// Index page: unfiltered grid over the full set
	page := render.GridPage{
		Title:      cfg.Directory.Title,
		Selected:   filter.Selection{Town: filter.All, Category: filter.All},
		Towns:      filter.TownOptions(records),
		Categories: filter.CategoryOptions(records, cfg.Glyph),
		Cards:      builder.Cards(records),
	}

	if len(records) == 0 {
		page.Message = "No listings currently available. Please check back later."
	}

	indexPath := filepath.Join(*outputDir, "index.html")
	if err := writePage(indexPath, func(f *os.File) error { return renderer.Grid(f, page) }); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to write index: %v\n", err)
		os.Exit(1)
	}

	// One profile page per record, addressable by slug
	for _, rec := range records {
		profile := render.ProfilePage{
			Title:   cfg.Directory.Title,
			Detail:  builder.Detail(rec),
			BackURL: "../index.html",
		}

		path := filepath.Join(*outputDir, "profiles", rec.Slug+".html")
		if err := writePage(path, func(f *os.File) error { return renderer.Profile(f, profile) }); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	fmt.Printf("✨ Rendered %d pages to %s in %v\n", len(records)+1, *outputDir, time.Since(startTime))
}

func resolveConfig(configFile, feedURL, feedFile string) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
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

	return config.FromSource(feedURL, feedFile)
}

func writePage(path string, renderFn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := renderFn(f); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}
