// Package catalog parses the course catalog's listing and detail pages and
// discovers how many listing pages exist.
package catalog

import "fmt"

// SchemaDriftError reports that an expected markup element is missing from a
// page, meaning the site's structure no longer matches what the extractor
// expects. It is fatal for the page (or course) being parsed, not for the run.
type SchemaDriftError struct {
	URL     string
	Message string
}

func (e *SchemaDriftError) Error() string {
	return fmt.Sprintf("schema drift at %s: %s", e.URL, e.Message)
}

// MalformedScheduleError reports that the schedule text of a course could not
// be split into a day and a time. It is fatal for that course only.
type MalformedScheduleError struct {
	URL   string
	Value string
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("malformed schedule value %q at %s", e.Value, e.URL)
}
