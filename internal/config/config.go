// Package config provides configuration loading and validation for the CLI.
// Configuration is explicit: values are loaded here and passed into component
// constructors; no package reads the process environment at init time.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Defaults for the scrape pipeline.
const (
	DefaultBaseURL        = "https://www.crea.nl/cursussen/cursussen-overzicht"
	DefaultBatchSize      = 25
	DefaultPageCap        = 100
	DefaultTimeoutSeconds = 30
	DefaultOutputPath     = "output/course_data.csv"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags.
type Config struct {
	// Scrape
	BaseURL        string `json:"base_url,omitempty" validate:"omitempty,url"` // Course overview base URL
	BatchSize      int    `json:"batch_size,omitempty" validate:"gte=0"`       // Concurrent requests per batch
	PageCap        int    `json:"page_cap,omitempty" validate:"gte=0"`         // Maximum listing pages to walk
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0"`  // Per-request timeout
	Retries        int    `json:"retries,omitempty" validate:"gte=0"`          // Per-request retry attempts

	// Output
	OutputPath  string `json:"output_path,omitempty"`  // CSV dataset path
	DatabaseURL string `json:"database_url,omitempty"` // Optional PostgreSQL connection URL

	// Search
	APIKey string `json:"api_key,omitempty"` // Gemini API key for query expansion

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Enable debug logging
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		BatchSize:      DefaultBatchSize,
		PageCap:        DefaultPageCap,
		TimeoutSeconds: DefaultTimeoutSeconds,
		OutputPath:     DefaultOutputPath,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. This is used to apply config file values on top of the built-in
// defaults before CLI flags override them.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.PageCap == 0 {
		result.PageCap = defaults.PageCap
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Retries == 0 {
		result.Retries = defaults.Retries
	}
	if result.OutputPath == "" {
		result.OutputPath = defaults.OutputPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
