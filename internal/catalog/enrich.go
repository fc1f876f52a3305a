package catalog

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/oracle/internal/types"
)

// maxConcurrentLookups bounds the per-batch fan-out against the provider.
const maxConcurrentLookups = 5

// Enricher runs best-effort catalog lookups across a candidate batch.
// A nil Enricher (or one without a client) passes batches through unchanged,
// which is how absent provider credentials disable this stage.
type Enricher struct {
	client *Client
}

// NewEnricher wraps a catalog client. The client may be nil.
func NewEnricher(client *Client) *Enricher {
	return &Enricher{client: client}
}

// Enrich returns a new slice, index-aligned with the input, with artwork and
// credits attached where the catalog resolved them. Lookups fan out
// concurrently; each failure is absorbed and logged, and the affected
// candidate is carried forward unchanged. The batch is never shortened.
func (e *Enricher) Enrich(ctx context.Context, in []types.Candidate) []types.Candidate {
	out := make([]types.Candidate, len(in))
	if e == nil || e.client == nil {
		copy(out, in)
		return out
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, c := range in {
		g.Go(func() error {
			out[i] = e.enrichOne(gCtx, c)
			return nil
		})
	}
	// Workers never return errors; failures degrade per candidate.
	_ = g.Wait()
	return out
}

// enrichOne looks up one candidate. The credits lookup is independently
// best-effort: a match without credits still keeps its artwork.
func (e *Enricher) enrichOne(ctx context.Context, c types.Candidate) types.Candidate {
	artwork, err := e.client.Lookup(ctx, c.Title, c.Year, c.Kind)
	if err != nil {
		log.Printf("catalog lookup failed for %q: %v", c.Title, err)
		return c
	}
	if artwork == nil {
		return c
	}
	c.Artwork = artwork

	credits, err := e.client.Credits(ctx, artwork.CatalogID, c.Kind)
	if err != nil {
		log.Printf("credits lookup failed for %q: %v", c.Title, err)
		return c
	}
	if credits != nil {
		c.Credits = credits
	}
	return c
}
