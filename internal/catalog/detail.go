package catalog

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/course-catalog-agent/internal/types"
)

// Selectors for the known structure of a course detail page.
const (
	titleSelector        = ".product_title.entry-title"
	metaValuesSelector   = "div.meta_values"
	descriptionSelector  = ".wpb_wrapper"
	mainDataSelector     = "div.product_main_data"
	registerLinkSelector = "a.register_link"
)

// ExtractDetail parses one course detail page into the course's metadata and
// its offerings, one per schedule/price table. A SchemaDriftError or
// MalformedScheduleError fails this course only; the caller is expected to
// isolate it and continue with the remaining courses.
func ExtractDetail(doc *goquery.Document, pageURL string, logger *slog.Logger) (types.CourseInfo, []types.Offering, error) {
	if logger == nil {
		logger = slog.Default()
	}

	name, err := extractName(doc, pageURL)
	if err != nil {
		return types.CourseInfo{}, nil, err
	}
	category, err := extractCategory(doc, pageURL)
	if err != nil {
		return types.CourseInfo{}, nil, err
	}

	info := types.CourseInfo{
		URL:         pageURL,
		Name:        name,
		Category:    category,
		Description: extractDescription(doc),
	}

	offerings, err := extractOfferings(doc, info, logger)
	if err != nil {
		return types.CourseInfo{}, nil, err
	}
	return info, offerings, nil
}

func extractName(doc *goquery.Document, pageURL string) (string, error) {
	title := doc.Find(titleSelector).First()
	if title.Length() == 0 {
		return "", &SchemaDriftError{URL: pageURL, Message: "course title element not found"}
	}
	return title.Text(), nil
}

// extractCategory finds the labeled metadata block for the course category and
// joins the category link texts with " / ". The source markup appends one
// separator character to every category link, which is stripped here.
func extractCategory(doc *goquery.Document, pageURL string) (string, error) {
	var block *goquery.Selection
	doc.Find(metaValuesSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.ToLower(sel.Text())
		if strings.Contains(text, "categorie") || strings.Contains(text, "category") {
			block = sel
			return false
		}
		return true
	})
	if block == nil {
		return "", &SchemaDriftError{URL: pageURL, Message: "category metadata block not found"}
	}

	var categories []string
	block.Find("a").Each(func(_ int, a *goquery.Selection) {
		categories = append(categories, trimLastRune(a.Text()))
	})
	return strings.Join(categories, " / "), nil
}

// extractDescription concatenates every paragraph inside the body wrapper,
// separated by blank lines. A page without a wrapper yields an empty
// description; only the title and category are load-bearing for the record.
func extractDescription(doc *goquery.Document) string {
	var parts []string
	doc.Find(descriptionSelector).First().Find("p").Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, p.Text())
	})
	return strings.Join(parts, "\n\n")
}

// extractOfferings walks the schedule/price tables of the detail area. Tables
// pair positionally with register links; when the counts differ only the
// first min(count) pairs are processed, matching the site's historic layout.
func extractOfferings(doc *goquery.Document, info types.CourseInfo, logger *slog.Logger) ([]types.Offering, error) {
	mainData := doc.Find(mainDataSelector).First()
	tables := mainData.ChildrenFiltered("table")
	links := mainData.Find(registerLinkSelector)

	if tables.Length() == 0 {
		logger.Warn("no schedule tables found", "url", info.URL)
		return nil, nil
	}
	if tables.Length() != links.Length() {
		logger.Debug("table/register link count mismatch",
			"url", info.URL, "tables", tables.Length(), "links", links.Length())
	}

	n := tables.Length()
	if links.Length() < n {
		n = links.Length()
	}

	offerings := make([]types.Offering, 0, n)
	for i := 0; i < n; i++ {
		fields := parseScheduleTable(tables.Eq(i))

		day, timeOfDay, ok := splitDayTime(fields.Time)
		if !ok {
			return nil, &MalformedScheduleError{URL: info.URL, Value: fields.Time}
		}
		if !fields.TypePresent {
			logger.Warn("course type column missing, defaulting to empty", "url", info.URL)
		}
		for label, value := range fields.Extra {
			logger.Debug("unrecognized schedule column", "url", info.URL, "label", label, "value", value)
		}

		offerings = append(offerings, types.Offering{
			CourseName:   info.Name,
			Day:          day,
			Time:         timeOfDay,
			DayTime:      day + " " + timeOfDay,
			StartDate:    fields.StartDate,
			Duration:     fields.Duration,
			Period:       fields.Period,
			Price:        fields.Price,
			CourseNumber: fields.CourseNumber,
			Teacher:      fields.Teacher,
			Language:     fields.Language,
			Type:         fields.Type,
			Status:       deriveStatus(links.Eq(i).Text()),
		})
	}
	return offerings, nil
}

// deriveStatus infers registration status from the register link's text.
// "vol" beats "gestart" beats the open default; the first matching rule wins.
func deriveStatus(linkText string) types.Status {
	text := strings.ToLower(linkText)
	switch {
	case strings.Contains(text, "vol"):
		return types.StatusFull
	case strings.Contains(text, "gestart"):
		return types.StatusStarted
	default:
		return types.StatusOpen
	}
}

// trimLastRune strips exactly one trailing rune, the per-category separator
// the source markup appends.
func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
