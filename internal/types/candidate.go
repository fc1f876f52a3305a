// Package types provides type definitions for structured data used throughout the oracle recommendation system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Kind distinguishes movies from series.
type Kind string

// Kind values accepted from the generative provider.
const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// AccessType describes how a title can be watched on a streaming service.
type AccessType string

// AccessType values. Rent and buy entries carry a price; included entries do not.
const (
	AccessIncluded AccessType = "included"
	AccessRent     AccessType = "rent"
	AccessBuy      AccessType = "buy"
)

// Availability is a single watch option reported by the generative provider.
type Availability struct {
	Provider   string     `json:"provider"`
	AccessType AccessType `json:"accessType"`
	Price      *float64   `json:"price,omitempty"` // required unless accessType is included
}

// Artwork holds imagery and the catalog identifier resolved for a candidate.
// Absent until catalog enrichment runs, and still absent if the lookup fails.
type Artwork struct {
	PosterURL   string `json:"posterUrl,omitempty"`
	BackdropURL string `json:"backdropUrl,omitempty"`
	CatalogID   int    `json:"catalogId,omitempty"`
}

// Credits holds cast and crew names resolved from the catalog provider.
type Credits struct {
	Cast     []string `json:"cast,omitempty"` // billing order, at most 3 names
	Director string   `json:"director,omitempty"`
}

// Ratings holds review scores resolved from the ratings provider.
// Every field is independently optional.
type Ratings struct {
	CriticScore   *float64 `json:"criticScore,omitempty"`   // 0-10 scale
	AudienceScore *float64 `json:"audienceScore,omitempty"` // 0-100 percentage
	Metascore     *int     `json:"metascore,omitempty"`
}

// Candidate is one recommended title moving through the pipeline.
// Validation assigns the ID and guarantees Title, Kind and an IntrinsicMatch
// in [0,1]; later stages only ever add the optional fields.
type Candidate struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Year           int            `json:"year,omitempty"`
	Kind           Kind           `json:"type"`
	Summary        string         `json:"overview,omitempty"`
	Genres         []string       `json:"genres,omitempty"`
	RuntimeMinutes int            `json:"runtimeMinutes,omitempty"` // movies only
	SeasonCount    int            `json:"seasons,omitempty"`        // series only
	Availability   []Availability `json:"availability,omitempty"`
	IntrinsicMatch float64        `json:"matchScore"`
	Artwork        *Artwork       `json:"artwork,omitempty"`
	Credits        *Credits       `json:"credits,omitempty"`
	Ratings        *Ratings       `json:"ratings,omitempty"`
	PersonalScore  *float64       `json:"personalScore,omitempty"`
}
