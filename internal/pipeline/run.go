// Package pipeline orchestrates the full catalog scrape: listing discovery,
// detail fetching, extraction and the final metadata join.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonathan/course-catalog-agent/internal/catalog"
	"github.com/jonathan/course-catalog-agent/internal/fetch"
	"github.com/jonathan/course-catalog-agent/internal/merge"
	"github.com/jonathan/course-catalog-agent/internal/types"
)

// Options holds the configuration for one scrape run. The pipeline keeps no
// state between runs; everything it needs is passed in here.
type Options struct {
	// BaseURL is the course overview URL, without the /page/N suffix.
	BaseURL string
	// BatchSize bounds how many requests are in flight at once. It is the
	// sole admission-control knob and is never raised internally.
	BatchSize int
	// PageCap bounds how many listing pages are fetched.
	PageCap int
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
	// Retries bounds per-request retry attempts. Zero preserves the
	// single-attempt behavior of the original crawl.
	Retries int
	Logger  *slog.Logger
}

// Run executes the scrape and returns the joined offering rows.
//
// Failures are isolated by scope: a URL that fails to fetch leaves a logged
// gap, a listing page or course with drifted markup is logged and skipped,
// and only a violated join invariant fails the run as a whole.
func Run(ctx context.Context, opts Options) ([]types.Row, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = catalog.DefaultBatchSize
	}

	fetchOpts := fetch.DefaultOptions()
	if opts.Timeout > 0 {
		fetchOpts.Timeout = opts.Timeout
	}
	fetchOpts.Retries = opts.Retries
	fetcher := fetch.New(fetchOpts, logger)

	logger.Info("starting scrape", "base_url", opts.BaseURL)

	discoverer := catalog.NewDiscoverer(fetcher, opts.BaseURL, batchSize, opts.PageCap, logger)
	listingPages := discoverer.Discover(ctx)
	logger.Info("discovered listing pages", "count", len(listingPages))

	var courseURLs []string
	for _, page := range listingPages {
		urls, err := catalog.ExtractListing(page.Doc, page.URL)
		if err != nil {
			logger.Error("skipping listing page", "url", page.URL, "error", err)
			continue
		}
		courseURLs = append(courseURLs, urls...)
	}
	logger.Info("collected course urls", "count", len(courseURLs))

	var (
		infos     []types.CourseInfo
		offerings []types.Offering
	)
	for start := 0; start < len(courseURLs); start += batchSize {
		end := start + batchSize
		if end > len(courseURLs) {
			end = len(courseURLs)
		}

		for _, res := range fetcher.FetchAll(ctx, courseURLs[start:end]) {
			if !res.Present() {
				logger.Error("course page could not be fetched", "url", res.URL)
				continue
			}
			info, courseOfferings, err := catalog.ExtractDetail(res.Doc, res.URL, logger)
			if err != nil {
				logger.Error("skipping course", "url", res.URL, "error", err)
				continue
			}
			infos = append(infos, info)
			offerings = append(offerings, courseOfferings...)
		}
	}

	rows, err := merge.Join(infos, offerings, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("scrape finished", "courses", len(infos), "rows", len(rows))
	return rows, nil
}
