// Package types defines the shared data model for the catalog scraping pipeline.
package types

// Status describes whether an offering still accepts registrations.
type Status string

const (
	// StatusOpen means the offering accepts new registrations.
	StatusOpen Status = "open"
	// StatusFull means the offering has no seats left.
	StatusFull Status = "vol"
	// StatusStarted means the offering already began.
	StatusStarted Status = "gestart"
)

// CourseInfo holds course-level metadata shared by all offerings of a course.
// Name is the identity key and is assumed unique within one scrape run.
type CourseInfo struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Category    string `json:"category"` // multi-valued, joined by " / "
	Description string `json:"description"`
}

// Offering is one concrete scheduled instance of a course. CourseName
// references CourseInfo.Name; it does not own the course metadata.
type Offering struct {
	CourseName   string `json:"name"`
	Day          string `json:"day"`
	Time         string `json:"time"`
	DayTime      string `json:"day_time"` // always Day + " " + Time
	StartDate    string `json:"start_date"`
	Duration     string `json:"duration"`
	Period       string `json:"period"`
	Price        string `json:"price"`
	CourseNumber string `json:"course_number"`
	Teacher      string `json:"teacher"`
	Language     string `json:"language"`
	Type         string `json:"type"`
	Status       Status `json:"status"`
}

// Row is one joined output record: an Offering combined with the metadata of
// the course it belongs to.
type Row struct {
	Offering
	URL         string `json:"url"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// NewRow combines an offering with its course metadata.
func NewRow(off Offering, info CourseInfo) Row {
	return Row{
		Offering:    off,
		URL:         info.URL,
		Category:    info.Category,
		Description: info.Description,
	}
}
