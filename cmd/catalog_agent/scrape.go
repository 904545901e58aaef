package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-catalog-agent/internal/config"
	"github.com/jonathan/course-catalog-agent/internal/db"
	"github.com/jonathan/course-catalog-agent/internal/pipeline"
	"github.com/jonathan/course-catalog-agent/internal/sink"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the course catalog into a CSV dataset",
	Long:  "Walks the paginated course overview, fetches every course detail page in bounded batches, extracts offerings and writes the joined dataset to CSV (and optionally to PostgreSQL).",
	RunE:  runScrape,
}

var (
	scrapeConfigPath  string
	scrapeBaseURL     string
	scrapeBatchSize   int
	scrapePageCap     int
	scrapeTimeoutSecs int
	scrapeRetries     int
	scrapeOutputPath  string
	scrapeDatabaseURL string
	scrapeVerbose     bool
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeConfigPath, "config", "c", "", "Path to JSON config file")
	scrapeCmd.Flags().StringVar(&scrapeBaseURL, "base-url", "", "Course overview base URL")
	scrapeCmd.Flags().IntVar(&scrapeBatchSize, "batch-size", 0, fmt.Sprintf("Concurrent requests per batch (default: %d)", config.DefaultBatchSize))
	scrapeCmd.Flags().IntVar(&scrapePageCap, "page-cap", 0, fmt.Sprintf("Maximum listing pages to walk (default: %d)", config.DefaultPageCap))
	scrapeCmd.Flags().IntVar(&scrapeTimeoutSecs, "timeout", 0, fmt.Sprintf("Per-request timeout in seconds (default: %d)", config.DefaultTimeoutSeconds))
	scrapeCmd.Flags().IntVar(&scrapeRetries, "retries", 0, "Per-request retry attempts (default: 0)")
	scrapeCmd.Flags().StringVarP(&scrapeOutputPath, "out", "o", "", fmt.Sprintf("Output CSV path (default: %s)", config.DefaultOutputPath))
	scrapeCmd.Flags().StringVar(&scrapeDatabaseURL, "database-url", "", "PostgreSQL URL to also persist the run to (overrides DATABASE_URL env var)")
	scrapeCmd.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(scrapeCmd)
}

// resolveScrapeConfig layers built-in defaults, the optional config file and
// the command's flags, in that order.
func resolveScrapeConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()

	if scrapeConfigPath != "" {
		fileCfg, err := config.LoadConfig(scrapeConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = scrapeBaseURL
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize = scrapeBatchSize
	}
	if cmd.Flags().Changed("page-cap") {
		cfg.PageCap = scrapePageCap
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = scrapeTimeoutSecs
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retries = scrapeRetries
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputPath = scrapeOutputPath
	}
	if cmd.Flags().Changed("database-url") {
		cfg.DatabaseURL = scrapeDatabaseURL
	} else if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if scrapeVerbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveScrapeConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	ctx := context.Background()

	// Optional database persistence alongside the CSV sink.
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	rows, err := pipeline.Run(ctx, pipeline.Options{
		BaseURL:   cfg.BaseURL,
		BatchSize: cfg.BatchSize,
		PageCap:   cfg.PageCap,
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		Retries:   cfg.Retries,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if err := sink.WriteCSV(rows, cfg.OutputPath); err != nil {
		return err
	}
	logger.Info("wrote dataset", "path", cfg.OutputPath, "rows", len(rows), "elapsed", time.Since(start).Round(time.Millisecond))

	if database != nil {
		runID, err := database.CreateRun(ctx, cfg.BaseURL)
		if err != nil {
			return err
		}
		if err := database.SaveRows(ctx, runID, rows); err != nil {
			return err
		}
		if err := database.CompleteRun(ctx, runID, "completed", len(rows)); err != nil {
			return err
		}
		logger.Info("persisted run", "run_id", runID)
	}

	return nil
}

// newLogger builds the process logger; debug level when verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
