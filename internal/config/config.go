// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults, env variables
// or CLI flags.
type Config struct {
	// Credentials
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Generative model API key
	TMDBAPIKey   string `json:"tmdb_api_key,omitempty"`   // Catalog metadata API key
	OMDBAPIKey   string `json:"omdb_api_key,omitempty"`   // Ratings API key

	// Server
	Port                 int `json:"port,omitempty"`                   // HTTP listen port
	SearchTimeoutSeconds int `json:"search_timeout_seconds,omitempty"` // Per-search deadline

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Default values applied by MergeWithDefaults when neither the config file
// nor the environment provides one.
const (
	DefaultPort                 = 8080
	DefaultSearchTimeoutSeconds = 45
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv returns a Config populated from environment variables. godotenv
// loads .env into the process environment before this runs.
func FromEnv() Config {
	return Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		TMDBAPIKey:   os.Getenv("TMDB_API_KEY"),
		OMDBAPIKey:   os.Getenv("OMDB_API_KEY"),
	}
}

// Validate checks that the configuration has valid values.
// Required credentials are checked later, after merging with the environment.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.SearchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'search_timeout_seconds' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults, then from built-in fallbacks.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.TMDBAPIKey == "" {
		result.TMDBAPIKey = defaults.TMDBAPIKey
	}
	if result.OMDBAPIKey == "" {
		result.OMDBAPIKey = defaults.OMDBAPIKey
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.SearchTimeoutSeconds == 0 {
		result.SearchTimeoutSeconds = defaults.SearchTimeoutSeconds
	}
	if result.SearchTimeoutSeconds == 0 {
		result.SearchTimeoutSeconds = DefaultSearchTimeoutSeconds
	}

	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
