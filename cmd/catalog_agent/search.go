package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-catalog-agent/internal/config"
	"github.com/jonathan/course-catalog-agent/internal/llm"
	"github.com/jonathan/course-catalog-agent/internal/search"
	"github.com/jonathan/course-catalog-agent/internal/sink"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a scraped dataset for matching courses",
	Long:  "Ranks courses from a previously scraped CSV dataset against a free-text query. With an API key the query is first expanded into bilingual keywords; without one the raw query is matched directly.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var (
	searchDataPath string
	searchTopK     int
	searchAPIKey   string
	searchNoLLM    bool
	searchVerbose  bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchDataPath, "data", "d", config.DefaultOutputPath, "Path to the scraped CSV dataset")
	searchCmd.Flags().IntVarP(&searchTopK, "top", "k", 10, "Number of results to show")
	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	searchCmd.Flags().BoolVar(&searchNoLLM, "no-llm", false, "Skip LLM keyword expansion and match the raw query")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	logger := newLogger(searchVerbose)

	rows, err := sink.ReadCSV(searchDataPath)
	if err != nil {
		return err
	}
	docs := search.PrepareRows(rows)
	if len(docs) == 0 {
		return fmt.Errorf("dataset %s holds no courses", searchDataPath)
	}

	apiKey := searchAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	// Expansion is best effort: a missing key or a failed call falls back to
	// matching the raw query.
	searchQuery := query
	if !searchNoLLM && apiKey != "" {
		ctx := context.Background()
		client, err := llm.NewClient(ctx, apiKey, "")
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		keywords, err := client.ExpandQuery(ctx, query)
		if err != nil {
			logger.Warn("keyword expansion failed, matching raw query", "error", err)
		} else {
			searchQuery = strings.Join(keywords, ", ")
			logger.Debug("expanded query", "keywords", searchQuery)
		}
	}

	matches := search.NewIndex(docs).TopK(searchQuery, searchTopK)
	for i, match := range matches {
		fmt.Printf("%2d. %-40s %-25s score=%.3f\n     %s\n",
			i+1, match.Document.Name, match.Document.Category, match.Score, match.Document.URL)
	}
	return nil
}
