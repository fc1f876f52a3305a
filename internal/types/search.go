package types

import "github.com/go-playground/validator/v10"

// PricePreference mirrors the price filters the UI sends alongside a query.
type PricePreference struct {
	Included     bool    `json:"included"`
	Rent         bool    `json:"rent"`
	Buy          bool    `json:"buy"`
	MaxRentPrice float64 `json:"maxRentPrice,omitempty" validate:"gte=0"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query               string           `json:"query" validate:"required"`
	ContentType         string           `json:"contentType,omitempty" validate:"omitempty,oneof=any movie series"`
	Genres              []string         `json:"genres,omitempty"`
	Services            []string         `json:"services,omitempty"`
	LengthPreference    LengthPreference `json:"lengthPreference,omitempty" validate:"omitempty,oneof=any short medium long"`
	PricePreference     *PricePreference `json:"pricePreference,omitempty"`
	PersonalPreferences *ViewerProfile   `json:"personalPreferences,omitempty"`
}

// Validate validates the SearchRequest using the validator.
// Blank-after-trim queries are checked separately at the HTTP boundary.
func (r *SearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SearchResponse is the body of a successful POST /search.
type SearchResponse struct {
	Results         []Candidate `json:"results"`
	TotalCandidates int         `json:"totalCandidates"`
	Query           string      `json:"query"`
}
