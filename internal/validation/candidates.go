// Package validation turns raw generative-provider records into typed
// candidates. It is a pure transform: malformed records are dropped, never
// repaired by further provider calls, and the batch fails only when nothing
// survives.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/oracle/internal/schemas"
	"github.com/jonathan/oracle/internal/types"
)

const (
	// minPlausibleYear bounds the release years we accept from the model.
	minPlausibleYear = 1900

	// defaultIntrinsicMatch is assumed when the model omits its confidence.
	defaultIntrinsicMatch = 0.5
)

// Candidates validates raw provider records into typed candidates.
// IDs are assigned here as "ai-<token>-<index>" — token is a request-scoped
// value supplied by the caller; provider-supplied ids are never trusted.
func Candidates(records []any, token string) ([]types.Candidate, error) {
	if err := schemas.ValidateRecommendations(records); err != nil {
		return nil, &MalformedResponseError{
			Message: "payload is not a non-empty list of records",
			Cause:   err,
		}
	}

	candidates := make([]types.Candidate, 0, len(records))
	for i, raw := range records {
		record, ok := raw.(map[string]any)
		if !ok {
			// Schema validation guarantees objects for decoded JSON; guard
			// against callers passing other Go values.
			continue
		}
		if c, ok := validateRecord(record, token, i); ok {
			candidates = append(candidates, c)
		}
	}

	if len(candidates) == 0 {
		return nil, &MalformedResponseError{Message: "no valid records in response"}
	}
	return candidates, nil
}

// validateRecord coerces a single raw record. Records missing a title or a
// recognizable kind are rejected; everything else degrades field by field.
func validateRecord(record map[string]any, token string, index int) (types.Candidate, bool) {
	title := strings.TrimSpace(stringField(record, "title"))
	if title == "" {
		return types.Candidate{}, false
	}

	kind, ok := parseKind(stringField(record, "type"))
	if !ok {
		return types.Candidate{}, false
	}

	c := types.Candidate{
		ID:             fmt.Sprintf("ai-%s-%d", token, index),
		Title:          title,
		Kind:           kind,
		Summary:        strings.TrimSpace(stringField(record, "overview")),
		Genres:         stringSlice(record["genres"]),
		IntrinsicMatch: intrinsicMatch(record),
		Availability:   parseAvailability(record["availability"]),
	}

	if year, ok := intField(record, "year"); ok && plausibleYear(year) {
		c.Year = year
	}

	// Length fields are kind-specific; the inapplicable one is dropped, not fatal.
	switch kind {
	case types.KindMovie:
		if runtime, ok := intField(record, "runtimeMinutes"); ok && runtime > 0 {
			c.RuntimeMinutes = runtime
		}
	case types.KindSeries:
		if seasons, ok := intField(record, "seasons"); ok && seasons > 0 {
			c.SeasonCount = seasons
		}
	}

	return c, true
}

// parseKind maps the provider's type strings onto the two supported kinds.
func parseKind(s string) (types.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "film":
		return types.KindMovie, true
	case "series", "tv", "show", "tv show":
		return types.KindSeries, true
	default:
		return "", false
	}
}

// intrinsicMatch reads the model's self-reported confidence, defaulting and
// clamping into [0,1] and rounding to two decimals.
func intrinsicMatch(record map[string]any) float64 {
	v, ok := floatField(record, "matchScore")
	if !ok {
		return defaultIntrinsicMatch
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return math.Round(v*100) / 100
}

func plausibleYear(year int) bool {
	return year >= minPlausibleYear && year <= time.Now().Year()+2
}

// parseAvailability keeps well-formed watch options and silently drops the
// rest. A rent/buy entry without a positive price is malformed.
func parseAvailability(raw any) []types.Availability {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	var out []types.Availability
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		provider := strings.TrimSpace(stringField(entry, "provider"))
		if provider == "" {
			provider = strings.TrimSpace(stringField(entry, "service"))
		}
		if provider == "" {
			continue
		}

		accessRaw := stringField(entry, "accessType")
		if accessRaw == "" {
			accessRaw = stringField(entry, "type")
		}

		access := types.AccessType(strings.ToLower(strings.TrimSpace(accessRaw)))
		a := types.Availability{Provider: provider, AccessType: access}

		switch access {
		case types.AccessIncluded:
			// No price on subscription entries.
		case types.AccessRent, types.AccessBuy:
			price, ok := floatField(entry, "price")
			if !ok || price <= 0 {
				continue
			}
			a.Price = &price
		default:
			continue
		}

		out = append(out, a)
	}
	return out
}

// stringField returns the raw string value for a key, or "".
func stringField(record map[string]any, key string) string {
	if s, ok := record[key].(string); ok {
		return s
	}
	return ""
}

// floatField coerces numeric-ish JSON values (numbers or numeric strings).
func floatField(record map[string]any, key string) (float64, bool) {
	switch v := record[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func intField(record map[string]any, key string) (int, bool) {
	f, ok := floatField(record, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// stringSlice coerces a JSON array into its string elements, preserving order.
func stringSlice(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
