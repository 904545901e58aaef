// Package sink persists joined catalog rows and loads them back for the
// search commands. Deduplication of exact-duplicate rows happens here, at
// rest, not in the scrape pipeline.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/course-catalog-agent/internal/types"
)

// Header is the column order of the persisted dataset.
var Header = []string{
	"name", "day", "time", "day_time", "start_date", "duration", "period",
	"price", "course_number", "teacher", "language", "type", "status",
	"url", "category", "description",
}

// WriteCSV writes the rows to path as comma-separated values, creating parent
// directories as needed. Exact-duplicate rows are dropped, keeping the first
// occurrence; row order is otherwise preserved.
func WriteCSV(rows []types.Row, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	seen := make(map[types.Row]struct{}, len(rows))
	for _, row := range rows {
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		if err := w.Write(record(row)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.CourseName, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output file %s: %w", path, err)
	}
	return nil
}

// ReadCSV loads a previously written dataset.
func ReadCSV(path string) ([]types.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}
	if len(records[0]) != len(Header) {
		return nil, fmt.Errorf("dataset %s has %d columns, expected %d", path, len(records[0]), len(Header))
	}

	rows := make([]types.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, fromRecord(rec))
	}
	return rows, nil
}

func record(row types.Row) []string {
	return []string{
		row.CourseName, row.Day, row.Time, row.DayTime, row.StartDate,
		row.Duration, row.Period, row.Price, row.CourseNumber, row.Teacher,
		row.Language, row.Type, string(row.Status),
		row.URL, row.Category, row.Description,
	}
}

func fromRecord(rec []string) types.Row {
	return types.Row{
		Offering: types.Offering{
			CourseName:   rec[0],
			Day:          rec[1],
			Time:         rec[2],
			DayTime:      rec[3],
			StartDate:    rec[4],
			Duration:     rec[5],
			Period:       rec[6],
			Price:        rec[7],
			CourseNumber: rec[8],
			Teacher:      rec[9],
			Language:     rec[10],
			Type:         rec[11],
			Status:       types.Status(rec[12]),
		},
		URL:         rec[13],
		Category:    rec[14],
		Description: rec[15],
	}
}
