// Package catalog enriches candidates with artwork and credits from a
// TMDb-compatible catalog provider. Every lookup is best-effort: a failure
// leaves the candidate exactly as it arrived.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonathan/oracle/internal/types"
)

// Defaults for the hosted TMDb API.
const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultTimeout      = 10 * time.Second
)

// maxCastNames caps how many billed cast members a candidate carries.
const maxCastNames = 3

// Error represents a failed catalog provider call.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config holds catalog client configuration. Zero values use the hosted defaults.
type Config struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Timeout      time.Duration
}

// Client is a minimal TMDb-compatible API client.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
}

// NewClient creates a catalog client. An empty API key returns nil, which
// disables catalog enrichment entirely.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultImageBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
}

type searchResult struct {
	ID           int    `json:"id"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type creditsResponse struct {
	Cast []struct {
		Name string `json:"name"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

// searchPath maps a candidate kind onto the provider's search endpoints.
func searchPath(kind types.Kind) string {
	if kind == types.KindSeries {
		return "tv"
	}
	return "movie"
}

// Lookup searches the catalog by title, year and kind. The first search
// result is taken as the canonical match; no fuzzy re-ranking. A nil Artwork
// with nil error means the catalog has no match.
func (c *Client) Lookup(ctx context.Context, title string, year int, kind types.Kind) (*types.Artwork, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", title)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	lookupURL := fmt.Sprintf("%s/search/%s?%s", c.baseURL, searchPath(kind), params.Encode())

	var resp searchResponse
	if err := c.getJSON(ctx, lookupURL, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	first := resp.Results[0]
	artwork := &types.Artwork{CatalogID: first.ID}
	if first.PosterPath != "" {
		artwork.PosterURL = c.imageBaseURL + first.PosterPath
	}
	if first.BackdropPath != "" {
		artwork.BackdropURL = c.imageBaseURL + first.BackdropPath
	}
	return artwork, nil
}

// Credits fetches up to 3 billed cast names and, for movies, the director.
// A nil Credits with nil error means the provider listed nobody.
func (c *Client) Credits(ctx context.Context, catalogID int, kind types.Kind) (*types.Credits, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	creditsURL := fmt.Sprintf("%s/%s/%d/credits?%s", c.baseURL, searchPath(kind), catalogID, params.Encode())

	var resp creditsResponse
	if err := c.getJSON(ctx, creditsURL, &resp); err != nil {
		return nil, err
	}

	credits := &types.Credits{}
	for i, member := range resp.Cast {
		if i == maxCastNames {
			break
		}
		credits.Cast = append(credits.Cast, member.Name)
	}

	if kind == types.KindMovie {
		for _, member := range resp.Crew {
			if member.Job == "Director" {
				credits.Director = member.Name
				break
			}
		}
	}

	if len(credits.Cast) == 0 && credits.Director == "" {
		return nil, nil
	}
	return credits, nil
}

// getJSON executes a GET request and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &Error{URL: requestURL, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{URL: requestURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &Error{URL: requestURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{URL: requestURL, Message: "failed to read response body", Cause: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{URL: requestURL, Message: "failed to decode response JSON", Cause: err}
	}
	return nil
}
