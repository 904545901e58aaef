// Package merge joins per-offering records to their course metadata.
package merge

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/course-catalog-agent/internal/types"
)

// InvariantViolationError reports that offerings could not all be resolved to
// course metadata by name. This signals scraping drift (duplicate or missing
// course names), so no partial output is returned alongside it.
type InvariantViolationError struct {
	OfferingCount int
	JoinedCount   int
	Missing       []string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("join produced %d rows for %d offerings, courses without metadata: %v",
		e.JoinedCount, e.OfferingCount, e.Missing)
}

// Join inner-joins every offering to its course metadata by course name and
// returns the combined rows in offering order. Every offering must resolve to
// exactly one CourseInfo; otherwise the whole run is considered invalid and an
// InvariantViolationError is returned with no rows.
//
// Exact-duplicate rows are not deduplicated here; that is the sink's job.
func Join(infos []types.CourseInfo, offerings []types.Offering, logger *slog.Logger) ([]types.Row, error) {
	if logger == nil {
		logger = slog.Default()
	}

	byName := make(map[string]types.CourseInfo, len(infos))
	for _, info := range infos {
		if _, seen := byName[info.Name]; seen {
			logger.Warn("duplicate course name in metadata", "name", info.Name)
		}
		byName[info.Name] = info
	}

	rows := make([]types.Row, 0, len(offerings))
	var missing []string
	for _, off := range offerings {
		info, ok := byName[off.CourseName]
		if !ok {
			missing = append(missing, off.CourseName)
			continue
		}
		rows = append(rows, types.NewRow(off, info))
	}

	if len(rows) < len(offerings) {
		return nil, &InvariantViolationError{
			OfferingCount: len(offerings),
			JoinedCount:   len(rows),
			Missing:       missing,
		}
	}
	return rows, nil
}
