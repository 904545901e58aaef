package catalog

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// listingContainerSelector locates the course list on an overview page.
const listingContainerSelector = "ul.stm-courses"

// ExtractListing parses one listing page into the ordered list of course
// detail URLs it links to. Relative hrefs are resolved against pageURL.
//
// A page without the listing container fails with a SchemaDriftError rather
// than returning an empty list: an empty container and a broken container are
// indistinguishable without a named failure.
func ExtractListing(doc *goquery.Document, pageURL string) ([]string, error) {
	container := doc.Find(listingContainerSelector).First()
	if container.Length() == 0 {
		return nil, &SchemaDriftError{
			URL:     pageURL,
			Message: "course listing container " + listingContainerSelector + " not found",
		}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var courseURLs []string
	container.ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
		href, exists := item.Find("a[href]").First().Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}
		href = strings.TrimSpace(href)
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		courseURLs = append(courseURLs, href)
	})

	return courseURLs, nil
}
