package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-catalog-agent/internal/types"
)

func row(name, description, day string) types.Row {
	return types.Row{
		Offering: types.Offering{
			CourseName: name,
			Day:        day,
			Time:       "18:00 - 20:00",
		},
		URL:         "https://example.com/cursus/" + name,
		Category:    "Algemeen",
		Description: description,
	}
}

func TestPrepareRows_OneDocumentPerCourse(t *testing.T) {
	rows := []types.Row{
		row("zangles", "Leer zingen in een groep.", "ma"),
		row("zangles", "Leer zingen in een groep.", "di"),
		row("gitaar", "Akkoorden en ritme.", "wo"),
	}

	docs := PrepareRows(rows)
	require.Len(t, docs, 2)
	assert.Equal(t, "zangles", docs[0].Name)
	assert.Equal(t, "gitaar", docs[1].Name)
	assert.Equal(t, "Course title: zangles\nCourse description: Leer zingen in een groep.", docs[0].Text)
}

func TestIndex_RanksOverlappingDocumentFirst(t *testing.T) {
	docs := PrepareRows([]types.Row{
		row("jazzband", "Samen jazz spelen in een band, improvisatie en muziek.", "ma"),
		row("houtbewerking", "Werken met hout, zagen en schaven.", "di"),
		row("ballet", "Klassieke dans voor beginners.", "wo"),
	})

	matches := NewIndex(docs).TopK("jazz, muziek, instrument, band", 3)
	require.Len(t, matches, 3)
	assert.Equal(t, "jazzband", matches[0].Document.Name)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestIndex_TopKBounds(t *testing.T) {
	docs := PrepareRows([]types.Row{
		row("a", "een twee drie", "ma"),
		row("b", "vier vijf zes", "di"),
	})
	ix := NewIndex(docs)

	assert.Len(t, ix.TopK("een", 10), 2)
	assert.Len(t, ix.TopK("een", 1), 1)
	assert.Empty(t, ix.TopK("een", 0))
}

func TestIndex_QueryWithoutOverlapScoresZero(t *testing.T) {
	docs := PrepareRows([]types.Row{row("a", "een twee drie", "ma")})
	matches := NewIndex(docs).TopK("zzz onbekend", 1)
	require.Len(t, matches, 1)
	assert.Zero(t, matches[0].Score)
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Course title: Zangles!\nLeer zingen, één les per week.")
	assert.Contains(t, tokens, "zangles")
	assert.Contains(t, tokens, "één")
	assert.NotContains(t, tokens, "n", "single-character tokens are dropped")
}
