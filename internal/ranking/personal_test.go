package ranking

import (
	"testing"

	"github.com/jonathan/oracle/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestPersonalScore_NeutralProfile(t *testing.T) {
	c := &types.Candidate{
		Title:          "Dune",
		Kind:           types.KindMovie,
		IntrinsicMatch: 0.5,
	}

	// search match: min(0.5+0.1, 1) = 0.6 → 0.30
	// four neutral sub-scores at 0.7 → 0.2*0.7 + 0.15*0.7 + 0.10*0.7 + 0.05*0.7 = 0.35
	score := PersonalScore(c, nil)
	assert.InDelta(t, 0.65, score, 1e-9)
}

func TestPersonalScore_FavoriteGenreScenario(t *testing.T) {
	// Query "epic fantasy with prophecy": favorite genre matches push the
	// preferences sub-score to its cap while everything else stays neutral.
	c := &types.Candidate{
		Title:          "The Wheel of Time",
		Kind:           types.KindSeries,
		Genres:         []string{"Fantasy", "Adventure"},
		IntrinsicMatch: 0.9,
	}
	profile := &types.ViewerProfile{
		FavoriteGenres: []string{"Fantasy"},
	}

	// search match: min(0.9+0.1, 1) = 1.0      → 0.50
	// preferences:  clamp(0.7 + (1/1)*0.3) = 1 → 0.20
	// thumbs/saved/recent neutral 0.7          → 0.15*0.7+0.10*0.7+0.05*0.7 = 0.21
	score := PersonalScore(c, profile)
	assert.InDelta(t, 0.91, score, 1e-9)
}

func TestPersonalScore_AlwaysBounded(t *testing.T) {
	c := &types.Candidate{
		Title:          "Everything Viewer Loves",
		Kind:           types.KindMovie,
		Genres:         []string{"Fantasy", "Adventure", "Action"},
		RuntimeMinutes: 100,
		IntrinsicMatch: 1.0,
		Ratings:        &types.Ratings{CriticScore: floatPtr(9.9)},
		Credits:        &types.Credits{Cast: []string{"Favorite Actor"}},
	}
	profile := &types.ViewerProfile{
		FavoriteGenres:        []string{"Fantasy", "Adventure", "Action"},
		FavoriteTalent:        []string{"Favorite Actor"},
		PreferredLength:       types.LengthMedium,
		MinRating:             floatPtr(5.0),
		ThumbsUpGenres:        []string{"Fantasy", "Adventure", "Action"},
		SavedGenres:           []string{"Fantasy", "Adventure", "Action"},
		RecentGenres:          []string{"Fantasy", "Adventure", "Action"},
		RecentHighRatedGenres: []string{"Fantasy", "Adventure", "Action"},
	}

	score := PersonalScore(c, profile)
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.InDelta(t, 1.0, score, 1e-9) // every sub-score saturates

	// And the hostile mirror image stays at the lower bound of its range.
	hostile := &types.ViewerProfile{
		DislikedGenres:   []string{"Fantasy", "Adventure", "Action"},
		ThumbsDownGenres: []string{"Fantasy", "Adventure", "Action"},
		MinRating:        floatPtr(10.0),
	}
	score = PersonalScore(c, hostile)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestPreferencesScore_MinRatingBonusNotPenalty(t *testing.T) {
	c := &types.Candidate{
		Title:          "Acclaimed",
		Kind:           types.KindMovie,
		IntrinsicMatch: 0.5,
		Ratings:        &types.Ratings{CriticScore: floatPtr(9.5)},
	}
	profile := &types.ViewerProfile{MinRating: floatPtr(8.0)}

	score := preferencesScore(c, profile)
	assert.InDelta(t, 0.8, score, 1e-9) // 0.7 + 0.1 bonus, no -0.3 penalty
}

func TestPreferencesScore_MinRatingPenalty(t *testing.T) {
	c := &types.Candidate{
		Title:          "Panned",
		Kind:           types.KindMovie,
		IntrinsicMatch: 0.5,
		Ratings:        &types.Ratings{CriticScore: floatPtr(4.0)},
	}
	profile := &types.ViewerProfile{MinRating: floatPtr(8.0)}

	score := preferencesScore(c, profile)
	assert.InDelta(t, 0.4, score, 1e-9)
}

func TestPreferencesScore_MinRatingIgnoredWithoutRatings(t *testing.T) {
	c := &types.Candidate{Title: "Unrated", Kind: types.KindMovie}
	profile := &types.ViewerProfile{MinRating: floatPtr(8.0)}

	score := preferencesScore(c, profile)
	assert.InDelta(t, neutralSubScore, score, 1e-9)
}

func TestPreferencesScore_DislikedGenres(t *testing.T) {
	c := &types.Candidate{
		Title:  "Slasher Marathon",
		Kind:   types.KindMovie,
		Genres: []string{"Horror", "Thriller"},
	}
	profile := &types.ViewerProfile{DislikedGenres: []string{"Horror", "Thriller"}}

	score := preferencesScore(c, profile)
	assert.InDelta(t, 0.7-0.6, score, 1e-9)
}

func TestPreferencesScore_FavoriteTalentMatches(t *testing.T) {
	c := &types.Candidate{
		Title:   "Oppenheimer",
		Kind:    types.KindMovie,
		Summary: "Christopher Nolan's portrait of the atomic age.",
		Credits: &types.Credits{
			Cast:     []string{"Cillian Murphy", "Emily Blunt"},
			Director: "Christopher Nolan",
		},
	}

	tests := []struct {
		name    string
		talent  string
		matched bool
	}{
		{"cast substring, case-insensitive", "cillian murphy", true},
		{"director", "nolan", true},
		{"title", "oppenheimer", true},
		{"summary", "atomic", true},
		{"no match", "Greta Gerwig", false},
		{"blank name", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matched, mentionsTalent(c, tt.talent))
		})
	}
}

func TestLengthFits(t *testing.T) {
	tests := []struct {
		name string
		c    types.Candidate
		pref types.LengthPreference
		fits bool
	}{
		{"short movie", types.Candidate{Kind: types.KindMovie, RuntimeMinutes: 85}, types.LengthShort, true},
		{"medium movie lower bound", types.Candidate{Kind: types.KindMovie, RuntimeMinutes: 90}, types.LengthMedium, true},
		{"medium movie upper bound", types.Candidate{Kind: types.KindMovie, RuntimeMinutes: 150}, types.LengthMedium, true},
		{"long movie", types.Candidate{Kind: types.KindMovie, RuntimeMinutes: 151}, types.LengthLong, true},
		{"long preference, short movie", types.Candidate{Kind: types.KindMovie, RuntimeMinutes: 80}, types.LengthLong, false},
		{"movie without runtime", types.Candidate{Kind: types.KindMovie}, types.LengthShort, false},
		{"any gives no bonus", types.Candidate{Kind: types.KindMovie, RuntimeMinutes: 100}, types.LengthAny, false},
		{"single season series is short", types.Candidate{Kind: types.KindSeries, SeasonCount: 1}, types.LengthShort, true},
		{"three season series is medium", types.Candidate{Kind: types.KindSeries, SeasonCount: 3}, types.LengthMedium, true},
		{"seven season series is long", types.Candidate{Kind: types.KindSeries, SeasonCount: 7}, types.LengthLong, true},
		{"series without seasons", types.Candidate{Kind: types.KindSeries}, types.LengthMedium, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fits, lengthFits(&tt.c, tt.pref))
		})
	}
}

func TestThumbsScore(t *testing.T) {
	c := &types.Candidate{Genres: []string{"Comedy", "Drama", "Horror"}}
	profile := &types.ViewerProfile{
		ThumbsUpGenres:   []string{"Comedy", "Drama"},
		ThumbsDownGenres: []string{"Horror"},
	}

	// 0.7 + 2*0.15 - 1*0.15
	assert.InDelta(t, 0.85, thumbsScore(c, profile), 1e-9)
}

func TestSavedListAndRecentWatchScores(t *testing.T) {
	c := &types.Candidate{Genres: []string{"Sci-Fi", "Thriller"}}
	profile := &types.ViewerProfile{
		SavedGenres:           []string{"Sci-Fi"},
		RecentGenres:          []string{"Sci-Fi", "Thriller"},
		RecentHighRatedGenres: []string{"Thriller"},
	}

	assert.InDelta(t, 0.8, savedListScore(c, profile), 1e-9)
	assert.InDelta(t, 0.7+2*0.08+0.15, recentWatchScore(c, profile), 1e-9)
}

func TestScoreAll_SetsScoresWithoutMutatingInput(t *testing.T) {
	in := []types.Candidate{
		{ID: "a", Title: "A", Kind: types.KindMovie, IntrinsicMatch: 0.9},
		{ID: "b", Title: "B", Kind: types.KindMovie, IntrinsicMatch: 0.2},
	}

	out := ScoreAll(in, nil)

	require.Len(t, out, 2)
	for i := range out {
		require.NotNil(t, out[i].PersonalScore)
		assert.GreaterOrEqual(t, *out[i].PersonalScore, 0.0)
		assert.LessOrEqual(t, *out[i].PersonalScore, 1.0)
		assert.Nil(t, in[i].PersonalScore)
	}
	assert.Greater(t, *out[0].PersonalScore, *out[1].PersonalScore)
}
