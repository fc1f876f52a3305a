// Package pipeline wires the discovery, validation, enrichment and ranking
// stages into a single search run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/oracle/internal/catalog"
	"github.com/jonathan/oracle/internal/llm"
	"github.com/jonathan/oracle/internal/matcher"
	"github.com/jonathan/oracle/internal/ranking"
	"github.com/jonathan/oracle/internal/ratings"
	"github.com/jonathan/oracle/internal/types"
	"github.com/jonathan/oracle/internal/validation"
)

// Config holds the credentials for the external services a Runner talks to.
// The Gemini key is mandatory; the catalog and ratings keys are optional and
// their absence disables the corresponding enrichment stage.
type Config struct {
	GeminiAPIKey  string
	CatalogAPIKey string
	RatingsAPIKey string
}

// Runner executes the full search pipeline. Safe for concurrent use.
type Runner struct {
	llm     llm.Client
	catalog *catalog.Enricher
	ratings *ratings.Enricher
}

// New builds a Runner from the given credentials.
func New(ctx context.Context, cfg Config) (*Runner, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	if cfg.CatalogAPIKey == "" {
		log.Printf("catalog API key not set, metadata enrichment disabled")
	}
	if cfg.RatingsAPIKey == "" {
		log.Printf("ratings API key not set, ratings enrichment disabled")
	}

	return &Runner{
		llm:     client,
		catalog: catalog.NewEnricher(catalog.NewClient(catalog.Config{APIKey: cfg.CatalogAPIKey})),
		ratings: ratings.NewEnricher(ratings.NewClient(ratings.Config{APIKey: cfg.RatingsAPIKey})),
	}, nil
}

// NewWithClient builds a Runner around an existing LLM client. Enrichment
// stages run only when the corresponding enricher is non-nil.
func NewWithClient(client llm.Client, catalogEnricher *catalog.Enricher, ratingsEnricher *ratings.Enricher) *Runner {
	return &Runner{llm: client, catalog: catalogEnricher, ratings: ratingsEnricher}
}

// Run executes one search end to end: discover candidates from the model,
// validate them, enrich with catalog metadata and external ratings, score
// against the viewer profile and rank. Enrichment failures degrade to
// unenriched candidates; only discovery and validation failures abort the run.
func (r *Runner) Run(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	records, err := matcher.Discover(ctx, r.llm, req.Query, matcher.FiltersFrom(req))
	if err != nil {
		return nil, err
	}

	candidates, err := validation.Candidates(records, requestToken())
	if err != nil {
		return nil, err
	}
	log.Printf("validated %d of %d raw recommendations", len(candidates), len(records))

	candidates = r.catalog.Enrich(ctx, candidates)
	candidates = r.ratings.Enrich(ctx, candidates)

	ranked := ranking.Rank(ranking.ScoreAll(candidates, req.PersonalPreferences))

	return &types.SearchResponse{
		Results:         ranked,
		TotalCandidates: len(ranked),
		Query:           req.Query,
	}, nil
}

// Close releases the Runner's LLM client.
func (r *Runner) Close() error {
	if r.llm == nil {
		return nil
	}
	return r.llm.Close()
}

// requestToken returns a short per-request token used to mint candidate IDs.
func requestToken() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
