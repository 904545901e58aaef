// Package search ranks scraped courses against a user query with TF-IDF
// similarity. Query preparation (keyword expansion) is the llm package's job;
// this package only matches text.
package search

import (
	"strings"

	"github.com/jonathan/course-catalog-agent/internal/types"
)

// Document is one searchable course: course-level metadata only, independent
// of how many offerings the course has.
type Document struct {
	Name     string
	URL      string
	Category string
	Text     string
}

// PrepareRows converts joined offering rows into one searchable document per
// course. Per-offering fields (day, time, price, status, ...) carry no search
// signal and are dropped; the first row of each course wins.
func PrepareRows(rows []types.Row) []Document {
	seen := make(map[string]struct{}, len(rows))
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.CourseName]; dup {
			continue
		}
		seen[row.CourseName] = struct{}{}
		docs = append(docs, Document{
			Name:     row.CourseName,
			URL:      row.URL,
			Category: row.Category,
			Text:     "Course title: " + row.CourseName + "\nCourse description: " + row.Description,
		})
	}
	return docs
}

// tokenize lowercases and splits on non-letter/digit boundaries, keeping
// tokens of at least two characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r > 127
}
