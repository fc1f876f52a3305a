// Package matcher asks the generative recommendation provider for candidate
// titles matching a free-text query. Its output is raw, untrusted records;
// the validation package turns them into typed candidates.
package matcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/oracle/internal/llm"
	"github.com/jonathan/oracle/internal/prompts"
	"github.com/jonathan/oracle/internal/types"
)

// Filters carries the browse filters the UI sends alongside a query.
// They are rendered into the prompt; the model applies them, not the pipeline.
type Filters struct {
	ContentType      string
	Genres           []string
	Services         []string
	LengthPreference types.LengthPreference
	PricePreference  *types.PricePreference
}

// FiltersFrom extracts the prompt filters from a search request.
func FiltersFrom(req *types.SearchRequest) Filters {
	return Filters{
		ContentType:      req.ContentType,
		Genres:           req.Genres,
		Services:         req.Services,
		LengthPreference: req.LengthPreference,
		PricePreference:  req.PricePreference,
	}
}

// envelope is the wire shape the model is instructed to return.
type envelope struct {
	Recommendations []any `json:"recommendations"`
}

// Discover asks the provider for candidate titles matching the query.
// The returned records are decoded JSON values, not validated candidates.
func Discover(ctx context.Context, client llm.Client, query string, filters Filters) ([]any, error) {
	prompt := buildPrompt(query, filters)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate recommendations",
			Cause:   err,
		}
	}

	return decodeEnvelope(responseText)
}

// decodeEnvelope parses the provider reply. The instructed shape is
// {"recommendations": [...]}, but a bare top-level array is tolerated since
// models occasionally drop the wrapper.
func decodeEnvelope(text string) ([]any, error) {
	text = llm.CleanJSONBlock(text)
	if text == "" {
		return nil, &ParseError{Message: "empty response"}
	}

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err == nil && env.Recommendations != nil {
		return env.Recommendations, nil
	}

	var records []any
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, &ParseError{
			Message: "response is not a JSON recommendation list",
			Cause:   err,
		}
	}
	return records, nil
}

// buildPrompt renders the recommendation prompt template with the query and filters.
func buildPrompt(query string, filters Filters) string {
	template := prompts.MustGet("recommend.json", "recommend-titles")
	return prompts.Format(template, map[string]string{
		"Query":            query,
		"ContentType":      orAny(filters.ContentType),
		"Genres":           orAny(strings.Join(filters.Genres, ", ")),
		"Services":         orAny(strings.Join(filters.Services, ", ")),
		"LengthPreference": orAny(string(filters.LengthPreference)),
		"PricePreference":  formatPricePreference(filters.PricePreference),
	})
}

// orAny substitutes "any" for an unset filter value.
func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "any"
	}
	return s
}

// formatPricePreference renders the price filters as a short prompt fragment.
func formatPricePreference(pref *types.PricePreference) string {
	if pref == nil {
		return "any"
	}

	var modes []string
	if pref.Included {
		modes = append(modes, "included with subscription")
	}
	if pref.Rent {
		if pref.MaxRentPrice > 0 {
			modes = append(modes, fmt.Sprintf("rent up to $%.2f", pref.MaxRentPrice))
		} else {
			modes = append(modes, "rent")
		}
	}
	if pref.Buy {
		modes = append(modes, "buy")
	}
	if len(modes) == 0 {
		return "any"
	}
	return strings.Join(modes, ", ")
}
