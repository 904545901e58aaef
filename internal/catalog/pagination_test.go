package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-catalog-agent/internal/fetch"
)

// listingServer serves /page/N with a minimal listing page when present(N),
// and 404 otherwise.
func listingServer(t *testing.T, present func(page int) bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		page, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil || !present(page) {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<html><body><ul class="stm-courses"><li><a href="/cursus/%d">c</a></li></ul><p id="page">%d</p></body></html>`, page, page)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDiscover_StopsPastTheFinalPage(t *testing.T) {
	server := listingServer(t, func(page int) bool { return page <= 36 })

	fetcher := fetch.New(nil, nil)
	d := NewDiscoverer(fetcher, server.URL, 25, 100, nil)
	pages := d.Discover(context.Background())

	require.Len(t, pages, 36)
	for i, page := range pages {
		assert.Equal(t, strconv.Itoa(i+1), page.Doc.Find("p#page").Text())
	}
}

func TestDiscover_MidBatchGapIsDroppedNotTerminal(t *testing.T) {
	// Only the last result of a batch decides end-of-pagination; a gap in the
	// middle of a batch is silently dropped. Inherited from the source site's
	// behavior of only 404-ing past the final page.
	server := listingServer(t, func(page int) bool { return page != 3 && page <= 10 })

	fetcher := fetch.New(nil, nil)
	d := NewDiscoverer(fetcher, server.URL, 5, 10, nil)
	pages := d.Discover(context.Background())

	require.Len(t, pages, 9)
	var got []string
	for _, page := range pages {
		got = append(got, page.Doc.Find("p#page").Text())
	}
	assert.Equal(t, []string{"1", "2", "4", "5", "6", "7", "8", "9", "10"}, got)
}

func TestDiscover_PageCapBoundsTheWalk(t *testing.T) {
	var requested atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requested.Add(1)
		fmt.Fprint(w, `<html><body><ul class="stm-courses"></ul></body></html>`)
	}))
	defer server.Close()

	fetcher := fetch.New(nil, nil)
	d := NewDiscoverer(fetcher, server.URL, 5, 10, nil)
	pages := d.Discover(context.Background())

	assert.Len(t, pages, 10)
	assert.Equal(t, int32(10), requested.Load())
}

func TestDiscover_BatchLargerThanCapIsClamped(t *testing.T) {
	var requested atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requested.Add(1)
		fmt.Fprint(w, `<html><body></body></html>`)
	}))
	defer server.Close()

	fetcher := fetch.New(nil, nil)
	d := NewDiscoverer(fetcher, server.URL, 25, 3, nil)
	pages := d.Discover(context.Background())

	assert.Len(t, pages, 3)
	assert.Equal(t, int32(3), requested.Load())
}

func TestDiscover_FirstPageAbsentYieldsNothing(t *testing.T) {
	server := listingServer(t, func(int) bool { return false })

	fetcher := fetch.New(nil, nil)
	d := NewDiscoverer(fetcher, server.URL, 1, 10, nil)
	pages := d.Discover(context.Background())

	assert.Empty(t, pages)
}
