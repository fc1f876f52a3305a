package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/oracle/internal/observability"
	"github.com/jonathan/oracle/internal/pipeline"
	"github.com/jonathan/oracle/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a one-shot recommendation search from the command line",
	Long: `Run a single search through the full pipeline and print the ranked results as JSON.

Example:
  oracle search "mind-bending sci-fi like Severance" --type series --length short`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var (
	searchConfigPath string
	searchType       string
	searchGenres     []string
	searchServices   []string
	searchLength     string
	searchVerbose    bool
)

func init() {
	searchCmd.Flags().StringVar(&searchConfigPath, "config", "", "Path to config.json file")
	searchCmd.Flags().StringVar(&searchType, "type", "any", "Content type: any, movie or series")
	searchCmd.Flags().StringSliceVar(&searchGenres, "genres", nil, "Genres to filter by")
	searchCmd.Flags().StringSliceVar(&searchServices, "services", nil, "Streaming services the viewer has")
	searchCmd.Flags().StringVar(&searchLength, "length", "any", "Length preference: any, short, medium or long")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print formatted progress and results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(searchConfigPath)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	req := &types.SearchRequest{
		Query:            strings.Join(args, " "),
		ContentType:      searchType,
		Genres:           searchGenres,
		Services:         searchServices,
		LengthPreference: types.LengthPreference(searchLength),
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid search: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.SearchTimeoutSeconds)*time.Second)
	defer cancel()

	runner, err := pipeline.New(ctx, pipeline.Config{
		GeminiAPIKey:  cfg.GeminiAPIKey,
		CatalogAPIKey: cfg.TMDBAPIKey,
		RatingsAPIKey: cfg.OMDBAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer runner.Close()

	printer := observability.NewPrinter(os.Stdout)
	if searchVerbose || cfg.Verbose {
		printer.PrintSearchRequest(req)
	}

	resp, err := runner.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchVerbose || cfg.Verbose {
		printer.PrintResults(resp)
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}
