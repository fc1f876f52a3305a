// Package ratings enriches candidates with critic and audience scores from
// an OMDb-compatible ratings provider. Lookups follow the same best-effort
// policy as catalog enrichment: a miss or failure is never fatal.
package ratings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/oracle/internal/types"
)

// Defaults for the hosted OMDb API.
const (
	DefaultBaseURL = "https://www.omdbapi.com/"
	DefaultTimeout = 10 * time.Second
)

// Error represents a failed ratings provider call.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ratings error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("ratings error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config holds ratings client configuration. Zero values use the hosted defaults.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is a minimal OMDb-compatible API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a ratings client. An empty API key returns nil, which
// disables ratings enrichment entirely.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// rottenTomatoesSource is the provider's label for audience percentages.
const rottenTomatoesSource = "Rotten Tomatoes"

type sourceRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// lookupResponse mirrors the provider's quirky wire format: capitalized
// keys, stringly-typed numbers and "N/A" for absent values.
type lookupResponse struct {
	Response   string         `json:"Response"`
	ImdbRating string         `json:"imdbRating"`
	Metascore  string         `json:"Metascore"`
	Ratings    []sourceRating `json:"Ratings"`
}

// Lookup fetches review scores by title and year. A nil Ratings with nil
// error means the provider has no entry for the title, or an entry with
// every score absent.
func (c *Client) Lookup(ctx context.Context, title string, year int) (*types.Ratings, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}
	lookupURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, &Error{URL: lookupURL, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: lookupURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: lookupURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: lookupURL, Message: "failed to read response body", Cause: err}
	}

	var decoded lookupResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{URL: lookupURL, Message: "failed to decode response JSON", Cause: err}
	}

	if decoded.Response == "False" {
		return nil, nil
	}

	return decoded.toRatings(), nil
}

// toRatings pulls the usable scores out of a provider entry.
func (r *lookupResponse) toRatings() *types.Ratings {
	ratings := &types.Ratings{}

	if score, ok := parseScore(r.ImdbRating); ok {
		ratings.CriticScore = &score
	}

	for _, rating := range r.Ratings {
		if rating.Source != rottenTomatoesSource {
			continue
		}
		if score, ok := parseScore(strings.TrimSuffix(rating.Value, "%")); ok {
			ratings.AudienceScore = &score
		}
		break
	}

	if score, ok := parseScore(r.Metascore); ok {
		meta := int(score)
		ratings.Metascore = &meta
	}

	if ratings.CriticScore == nil && ratings.AudienceScore == nil && ratings.Metascore == nil {
		return nil
	}
	return ratings
}

// parseScore parses a provider score string, treating "N/A" and blanks as absent.
func parseScore(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
