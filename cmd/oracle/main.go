// Package main provides the entry point for the Oracle recommendation service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oracle",
	Short: "AI-powered movie and TV recommendation service",
	Long:  "Oracle turns a natural-language query into a ranked list of movie and TV recommendations, enriched with catalog metadata and external ratings and scored against the viewer's taste profile.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
