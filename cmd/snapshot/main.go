// Package main provides the snapshot command-line tool: it fetches and
// normalizes the feed, optionally filters it, and exports a JSON snapshot
// or an aligned text table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"claydir/internal/config"
	"claydir/internal/feed"
	"claydir/internal/filter"
	"claydir/internal/models"
	"claydir/internal/normalizer"
	"claydir/pkg/tabular"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	feedURL := flag.String("url", "", "Feed CSV URL (overrides config)")
	feedFile := flag.String("file", "", "Local feed CSV file (overrides config)")
	output := flag.String("output", "", "Output JSON file path (default: stdout table)")
	format := flag.String("format", "", "Output format: json or table (default by -output)")
	town := flag.String("town", filter.All, "Town filter")
	category := flag.String("cat", filter.All, "Category filter")

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

	fmt.Printf("✅ Fetched %d bytes in %v\n", len(content), time.Since(startTime))

	rows, err := feed.ParseCSV(content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Parse failed: %v\n", err)
		os.Exit(1)
	}

	records, rejected := normalizer.NewNormalizer(cfg.Directory.DefaultTown).NormalizeAll(rows)
	fmt.Printf("✅ Normalized %d records (%d rejected)\n", len(records), rejected)

	selection := filter.Selection{Town: *town, Category: *category}
	if !selection.IsUnconstrained() {
		records = filter.Apply(records, selection)
		fmt.Printf("🔍 Filter (%s / %s) matched %d records\n", *town, *category, len(records))
	}

	outFormat := *format
	if outFormat == "" {
		if *output != "" {
			outFormat = "json"
		} else {
			outFormat = "table"
		}
	}

	switch outFormat {
	case "json":
		if err := writeJSON(records, *output); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Export failed: %v\n", err)
			os.Exit(1)
		}
	case "table":
		if err := writeTable(records); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Table output failed: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "❌ Unknown format: %s (want json or table)\n", outFormat)
		os.Exit(1)
	}
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

// writeJSON exports records plus summary statistics, to a file or stdout.
func writeJSON(records []models.BusinessRecord, outputPath string) error {
	snapshot := map[string]interface{}{
		"directory": records,
		"summary":   models.Summarize(records),
	}

	jsonData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(jsonData))

		return nil
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("💾 Snapshot written to %s\n", outputPath)

	return nil
}

// writeTable prints an aligned listing to stdout.
func writeTable(records []models.BusinessRecord) error {
	headers := []string{"Name", "Town", "Category", "Tier", "Phone"}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.Name, rec.Town, rec.Category, string(rec.Tier), rec.Phone})
	}

	return tabular.Write(os.Stdout, headers, rows)
}
