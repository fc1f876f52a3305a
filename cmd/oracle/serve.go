package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/oracle/internal/config"
	"github.com/jonathan/oracle/internal/pipeline"
	"github.com/jonathan/oracle/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /search for running recommendation searches.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by flags and env)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	runner, err := pipeline.New(context.Background(), pipeline.Config{
		GeminiAPIKey:  cfg.GeminiAPIKey,
		CatalogAPIKey: cfg.TMDBAPIKey,
		RatingsAPIKey: cfg.OMDBAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer runner.Close()

	srv := server.New(server.Config{
		Port:          cfg.Port,
		Searcher:      runner,
		SearchTimeout: time.Duration(cfg.SearchTimeoutSeconds) * time.Second,
	})

	return srv.Start()
}

// loadMergedConfig loads the optional config file and layers environment
// credentials and built-in defaults underneath it.
func loadMergedConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	merged := cfg.MergeWithDefaults(config.FromEnv())
	return merged, nil
}
