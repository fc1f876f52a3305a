package ratings

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/oracle/internal/types"
)

// maxConcurrentLookups bounds the per-batch fan-out against the provider.
const maxConcurrentLookups = 5

// Enricher runs best-effort ratings lookups across a candidate batch.
// A nil Enricher (or one without a client) passes batches through unchanged.
type Enricher struct {
	client *Client
}

// NewEnricher wraps a ratings client. The client may be nil.
func NewEnricher(client *Client) *Enricher {
	return &Enricher{client: client}
}

// Enrich returns a new slice, index-aligned with the input, with ratings
// attached where the provider resolved them. Failures are absorbed and
// logged per candidate; the batch is never shortened or reordered.
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
			ratings, err := e.client.Lookup(gCtx, c.Title, c.Year)
			if err != nil {
				log.Printf("ratings lookup failed for %q: %v", c.Title, err)
				out[i] = c
				return nil
			}
			if ratings != nil {
				c.Ratings = ratings
			}
			out[i] = c
			return nil
		})
	}
	_ = g.Wait()
	return out
}
