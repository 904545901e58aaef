package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/course-catalog-agent/internal/fetch"
)

// Pagination defaults.
const (
	DefaultBatchSize = 25
	DefaultPageCap   = 100
)

// Discoverer walks the paginated course overview until it runs past the last
// page or hits the page cap. The number of listing pages is unknown up front,
// so pages are requested in fixed-size batches and the batch's last result
// decides whether to keep going.
type Discoverer struct {
	fetcher   *fetch.Fetcher
	baseURL   string
	batchSize int
	pageCap   int
	logger    *slog.Logger
}

// NewDiscoverer creates a Discoverer over the given overview base URL.
// Non-positive batchSize or pageCap fall back to the defaults.
func NewDiscoverer(fetcher *fetch.Fetcher, baseURL string, batchSize, pageCap int, logger *slog.Logger) *Discoverer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if pageCap <= 0 {
		pageCap = DefaultPageCap
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{
		fetcher:   fetcher,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		batchSize: batchSize,
		pageCap:   pageCap,
		logger:    logger,
	}
}

// Discover fetches listing pages starting at page 1 and returns the present
// ones in page order, bounded by the page cap.
//
// End of pagination is detected from the *last* result of each batch only: an
// absent page in the middle of a batch is dropped from the output but does
// not stop the walk. A transient gap can therefore under-report pages; this
// mirrors the site's historic behavior of only ever 404-ing past the final
// page and is kept as is.
func (d *Discoverer) Discover(ctx context.Context) []fetch.Result {
	batchSize := d.batchSize
	if d.pageCap < batchSize {
		batchSize = d.pageCap
	}

	var accumulated []fetch.Result
	pageFrom, pageTo := 1, batchSize+1

	for pageTo <= d.pageCap+1 {
		d.logger.Info("requesting listing pages", "from", pageFrom, "to", pageTo-1)

		results := d.fetcher.FetchAll(ctx, d.pageURLs(pageFrom, pageTo))
		accumulated = append(accumulated, results...)
		if !results[len(results)-1].Present() {
			break
		}

		pageFrom += batchSize
		pageTo += batchSize
	}

	present := make([]fetch.Result, 0, len(accumulated))
	for _, res := range accumulated {
		if res.Present() {
			present = append(present, res)
		}
	}
	return present
}

// pageURLs builds the listing URLs for pages [from, to).
func (d *Discoverer) pageURLs(from, to int) []string {
	urls := make([]string, 0, to-from)
	for page := from; page < to; page++ {
		urls = append(urls, fmt.Sprintf("%s/page/%d", d.baseURL, page))
	}
	return urls
}
