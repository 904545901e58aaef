package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeywords_Valid(t *testing.T) {
	keywords, err := ParseKeywords(`{"keywords": ["jazz", "muziek", "not classical"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"jazz", "muziek", "not classical"}, keywords)
}

func TestParseKeywords_RejectsInvalidResponses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not JSON", "jazz, muziek"},
		{"missing keywords", `{"words": ["jazz"]}`},
		{"empty list", `{"keywords": []}`},
		{"wrong item type", `{"keywords": [1, 2]}`},
		{"empty string item", `{"keywords": [""]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKeywords(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestCleanJSONBlock(t *testing.T) {
	wrapped := "```json\n{\"keywords\": [\"jazz\"]}\n```"
	assert.Equal(t, `{"keywords": ["jazz"]}`, cleanJSONBlock(wrapped))
	assert.Equal(t, `{"keywords": ["jazz"]}`, cleanJSONBlock(`{"keywords": ["jazz"]}`))
}
