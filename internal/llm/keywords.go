package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// keywordPrompt converts a free-text user query into bilingual search
// keywords. The catalog holds Dutch and English titles and descriptions, so
// the keywords must mix both languages; negated interests are kept negated so
// the ranking can respect them.
const keywordPrompt = `
I have a database with course titles and descriptions in both English and Dutch.
For a given user query, I want to find the most interesting courses in the database for the user.
Convert the user query to a set of keywords in both English and Dutch that match the intent of the user.
These keywords are then used for similarity search over the database.

For example:
    - User query: I want to do something practical with my hands.
      houtbewerking, practical, pottery, electronics, sculptuur, ...
    - User query: I like to play jazz.
      jazz, muziek, instrument, band, not classical, not hip hop, jazzband, playing music, ...
    - User query: I like to play a new instrument. I already play guitar.
      instrument, music, play, not guitar, piano, muziek maken, viool, drums, jammen, jamming, ...
      * note that the user already plays guitar and wants to learn something new, so guitar is negated.

Note:
    - The user query can be in either English or Dutch.
    - The keywords should be a mix of both English and Dutch (without indicating the language).
    - Keep the keywords concise, try to avoid uncommon composites, e.g. balletlessen.
    - A keyword cannot be negated and not negated in the same output.
    - The frequency of similar keywords should be in line with the intent of the user.
    - If the user does NOT want something (could be explicit or implicit),
      then it should be negated either with not, no, niet, or geen.

Respond with JSON of the form {"keywords": ["keyword", ...]} and nothing else.

User query: %s
`

// keywordSchema validates the model's response before it is trusted.
const keywordSchema = `{
	"type": "object",
	"required": ["keywords"],
	"properties": {
		"keywords": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "string", "minLength": 1}
		}
	}
}`

type keywordResponse struct {
	Keywords []string `json:"keywords"`
}

// ExpandQuery asks the model for bilingual keywords matching the user query.
func (c *Client) ExpandQuery(ctx context.Context, query string) ([]string, error) {
	raw, err := c.GenerateJSON(ctx, fmt.Sprintf(keywordPrompt, query))
	if err != nil {
		return nil, err
	}
	return ParseKeywords(raw)
}

// ParseKeywords validates and decodes a keyword expansion response.
func ParseKeywords(raw string) ([]string, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(keywordSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate keyword response: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("keyword response does not match schema: %s", strings.Join(problems, "; "))
	}

	var resp keywordResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode keyword response: %w", err)
	}
	return resp.Keywords, nil
}
