// Package main provides the catalog_agent CLI for scraping the course catalog
// and searching the resulting dataset.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog_agent",
	Short: "Course catalog scraper and search",
	Long:  "catalog_agent crawls a paginated course catalog into a normalized dataset of course offerings, and searches that dataset with keyword-expanded TF-IDF matching.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
