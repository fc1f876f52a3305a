package types

// LengthPreference buckets a viewer's preferred title length.
type LengthPreference string

// LengthPreference values. Movies bucket by runtime (short <90min,
// medium 90-150min, long >150min); series bucket by season count.
const (
	LengthShort  LengthPreference = "short"
	LengthMedium LengthPreference = "medium"
	LengthLong   LengthPreference = "long"
	LengthAny    LengthPreference = "any"
)

// ViewerProfile is a read-only summary of a viewer's stated preferences and
// historical interactions. It is supplied by the surrounding application with
// each request; the pipeline never reads or writes viewer state itself.
//
// The genre sets suffixed *Genres are derived by the caller from its saved
// list, thumbs history and watch history, and are consumed as-is.
type ViewerProfile struct {
	FavoriteGenres  []string         `json:"favoriteGenres,omitempty"`
	DislikedGenres  []string         `json:"dislikedGenres,omitempty"`
	FavoriteTalent  []string         `json:"favoriteTalent,omitempty"` // actor/director names, matched as substrings
	PreferredLength LengthPreference `json:"preferredLength,omitempty"`
	MinRating       *float64         `json:"minRating,omitempty"` // against the critic score, 0-10 scale

	LikedIDs    []string `json:"likedIds,omitempty"`
	DislikedIDs []string `json:"dislikedIds,omitempty"`

	ThumbsUpGenres        []string `json:"thumbsUpGenres,omitempty"`
	ThumbsDownGenres      []string `json:"thumbsDownGenres,omitempty"`
	SavedGenres           []string `json:"savedGenres,omitempty"`
	RecentGenres          []string `json:"recentGenres,omitempty"`
	RecentHighRatedGenres []string `json:"recentHighRatedGenres,omitempty"`
}
