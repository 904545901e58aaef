package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Labels used by the schedule/price tables on detail pages.
const (
	labelTime         = "tijd"
	labelStartDate    = "startdatum"
	labelDuration     = "duur"
	labelPeriod       = "periode"
	labelPrice        = "prijs"
	labelCourseNumber = "cursusnummer"
	labelTeacher      = "docent"
	labelLanguage     = "taal"
	labelType         = "cursus type"
)

// ScheduleFields holds the label/value pairs of one schedule/price table.
// Recognized labels map to fixed fields; anything else lands in Extra so that
// new columns on the site surface in logs instead of disappearing silently.
type ScheduleFields struct {
	Time         string
	StartDate    string
	Duration     string
	Period       string
	Price        string
	CourseNumber string
	Teacher      string
	Language     string
	Type         string

	// TypePresent records whether the "cursus type" column existed at all.
	// A missing type column is tolerated, unlike a malformed time value.
	TypePresent bool

	Extra map[string]string
}

// set assigns one label/value pair. A later pair overwrites an earlier one
// with the same label, matching how row pairs within one table are merged.
func (s *ScheduleFields) set(label, value string) {
	switch label {
	case labelTime:
		s.Time = value
	case labelStartDate:
		s.StartDate = value
	case labelDuration:
		s.Duration = value
	case labelPeriod:
		s.Period = value
	case labelPrice:
		s.Price = value
	case labelCourseNumber:
		s.CourseNumber = value
	case labelTeacher:
		s.Teacher = value
	case labelLanguage:
		s.Language = value
	case labelType:
		s.Type = value
		s.TypePresent = true
	default:
		if s.Extra == nil {
			s.Extra = map[string]string{}
		}
		s.Extra[label] = value
	}
}

// parseScheduleTable reads one table's rows two at a time: an even row holds
// column labels, the following odd row holds the values at matching column
// positions. Empty labels are skipped; a label row without a value row is
// dropped.
func parseScheduleTable(table *goquery.Selection) ScheduleFields {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cols []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cols = append(cols, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, cols)
	})

	var fields ScheduleFields
	for i := 0; i+1 < len(rows); i += 2 {
		labels, values := rows[i], rows[i+1]
		for j, label := range labels {
			if label == "" {
				continue
			}
			value := ""
			if j < len(values) {
				value = values[j]
			}
			fields.set(label, value)
		}
	}
	return fields
}

// splitDayTime splits a raw schedule value like "di 18:00 - 20:00" into its
// day ("di") and time ("18:00 - 20:00") parts. Values tokenizing to five or
// more tokens, or to none at all, cannot be a day plus a time range.
func splitDayTime(value string) (day, timeOfDay string, ok bool) {
	tokens := strings.Fields(value)
	if len(tokens) == 0 || len(tokens) >= 5 {
		return "", "", false
	}
	return tokens[0], strings.Join(tokens[1:], " "), true
}
