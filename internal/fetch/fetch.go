// Package fetch provides batched, order-preserving URL fetching over a shared
// HTTP connection pool. It centralizes the HTTP logic used by pagination
// discovery and detail-page scraping.
package fetch

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout is the default per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CatalogAgent/1.0)"

// Result holds the parsed document for one fetched URL. Doc is nil when the
// request failed or returned a non-success status; a nil Doc never aborts the
// batch the URL was part of.
type Result struct {
	URL string
	Doc *goquery.Document
}

// Present reports whether the fetch produced a usable document.
func (r Result) Present() bool {
	return r.Doc != nil
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Retries bounds per-request retry attempts. Zero means a single attempt.
	Retries int
	Headers map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher issues concurrent GET requests over one shared client, so the
// connection pool is reused across all requests of a run.
type Fetcher struct {
	client *resty.Client
	logger *slog.Logger
}

// New creates a Fetcher. A nil opts uses DefaultOptions; a nil logger uses
// slog.Default.
func New(opts *Options, logger *slog.Logger) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetHeader("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		client.SetHeader(key, value)
	}

	return &Fetcher{client: client, logger: logger}
}

// FetchAll fetches every URL concurrently and returns one Result per input
// URL, in input order. Each URL is fetched independently: a transport error or
// non-success status yields an absent Result for that URL only. The caller
// controls the fan-out by sizing the batch it passes in; FetchAll itself does
// not throttle.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = f.fetchOne(ctx, u)
			return nil
		})
	}
	// Goroutines only record per-URL outcomes, never errors.
	_ = g.Wait()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) Result {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		f.logger.Debug("request failed", "url", url, "error", err)
		return Result{URL: url}
	}
	if !resp.IsSuccess() {
		f.logger.Debug("non-success status", "url", url, "status", resp.StatusCode())
		return Result{URL: url}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		f.logger.Warn("failed to parse response body", "url", url, "error", err)
		return Result{URL: url}
	}

	return Result{URL: url, Doc: doc}
}
