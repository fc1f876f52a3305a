// Package ranking computes personalization scores and the final presentation
// order for candidates. Everything here is pure and deterministic: no I/O,
// no clock, no randomness.
package ranking

import (
	"strings"

	"github.com/jonathan/oracle/internal/types"
)

// Weights for the scoring components.
const (
	searchMatchWeight = 0.50
	preferencesWeight = 0.20
	thumbsWeight      = 0.15
	savedListWeight   = 0.10
	recentWatchWeight = 0.05
)

// neutralSubScore is the floor every profile-driven sub-score starts from.
// Absent personalization data must not penalize a candidate relative to one
// for which data exists, so "no signal" reads as neutral-slightly-favorable
// rather than zero.
const neutralSubScore = 0.7

// searchMatchBoost is added to the model's confidence before capping at 1.
const searchMatchBoost = 0.10

// Length bucket boundaries, in minutes, for movies.
const (
	shortMaxMinutes  = 90
	mediumMaxMinutes = 150
)

// Season bucket boundaries for series.
const (
	shortMaxSeasons  = 1
	mediumMaxSeasons = 4
)

// PersonalScore combines a candidate's intrinsic match with the viewer
// profile into one bounded score. Each sub-score is clamped to [0,1] before
// weighting; only the weighted total is clamped again at the end. A nil
// profile scores every profile-driven component at the neutral floor.
func PersonalScore(c *types.Candidate, profile *types.ViewerProfile) float64 {
	if profile == nil {
		profile = &types.ViewerProfile{}
	}

	total := searchMatchWeight*clamp01(searchMatchScore(c)) +
		preferencesWeight*clamp01(preferencesScore(c, profile)) +
		thumbsWeight*clamp01(thumbsScore(c, profile)) +
		savedListWeight*clamp01(savedListScore(c, profile)) +
		recentWatchWeight*clamp01(recentWatchScore(c, profile))

	return clamp01(total)
}

// ScoreAll returns a new slice with PersonalScore set on every candidate.
// Input candidates are not modified.
func ScoreAll(in []types.Candidate, profile *types.ViewerProfile) []types.Candidate {
	out := make([]types.Candidate, len(in))
	for i, c := range in {
		score := PersonalScore(&c, profile)
		c.PersonalScore = &score
		out[i] = c
	}
	return out
}

// searchMatchScore boosts the model's self-reported confidence by a flat
// bonus, capped at 1. The bonus biases results upward so that strong query
// matches dominate the weighted total.
func searchMatchScore(c *types.Candidate) float64 {
	score := c.IntrinsicMatch + searchMatchBoost
	if score > 1 {
		return 1
	}
	return score
}

// preferencesScore applies the viewer's stated preferences: genre likes and
// dislikes, favorite talent, preferred length and minimum rating.
func preferencesScore(c *types.Candidate, p *types.ViewerProfile) float64 {
	score := neutralSubScore

	if len(p.FavoriteGenres) > 0 {
		if matches := overlapCount(c.Genres, p.FavoriteGenres); matches > 0 {
			score += (float64(matches) / float64(len(p.FavoriteGenres))) * 0.3
		}
	}

	score -= 0.3 * float64(overlapCount(c.Genres, p.DislikedGenres))

	for _, name := range p.FavoriteTalent {
		if mentionsTalent(c, name) {
			score += 0.15
		}
	}

	if lengthFits(c, p.PreferredLength) {
		score += 0.1
	}

	if p.MinRating != nil {
		if rating, ok := criticScore(c); ok {
			switch {
			case rating < *p.MinRating:
				score -= 0.3
			case rating >= *p.MinRating+1:
				score += 0.1
			}
		}
	}

	return score
}

// thumbsScore rewards overlap with genres the viewer has thumbed up and
// penalizes overlap with genres they have thumbed down.
func thumbsScore(c *types.Candidate, p *types.ViewerProfile) float64 {
	return neutralSubScore +
		0.15*float64(overlapCount(c.Genres, p.ThumbsUpGenres)) -
		0.15*float64(overlapCount(c.Genres, p.ThumbsDownGenres))
}

// savedListScore rewards similarity with the genres on the viewer's saved list.
func savedListScore(c *types.Candidate, p *types.ViewerProfile) float64 {
	return neutralSubScore + 0.1*float64(overlapCount(c.Genres, p.SavedGenres))
}

// recentWatchScore rewards similarity with recently watched genres, with a
// stronger bonus for genres of recently highly rated titles.
func recentWatchScore(c *types.Candidate, p *types.ViewerProfile) float64 {
	return neutralSubScore +
		0.08*float64(overlapCount(c.Genres, p.RecentGenres)) +
		0.15*float64(overlapCount(c.Genres, p.RecentHighRatedGenres))
}

// mentionsTalent reports whether a name appears, case-insensitively, as a
// substring of the candidate's cast, director, title or summary.
func mentionsTalent(c *types.Candidate, name string) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return false
	}

	if c.Credits != nil {
		for _, member := range c.Credits.Cast {
			if strings.Contains(strings.ToLower(member), needle) {
				return true
			}
		}
		if strings.Contains(strings.ToLower(c.Credits.Director), needle) {
			return true
		}
	}

	return strings.Contains(strings.ToLower(c.Title), needle) ||
		strings.Contains(strings.ToLower(c.Summary), needle)
}

// lengthFits reports whether the candidate's runtime or season count lands
// in the viewer's preferred length bucket. Candidates without length data
// never fit, and "any" grants no bonus.
func lengthFits(c *types.Candidate, pref types.LengthPreference) bool {
	switch c.Kind {
	case types.KindMovie:
		if c.RuntimeMinutes <= 0 {
			return false
		}
		switch pref {
		case types.LengthShort:
			return c.RuntimeMinutes < shortMaxMinutes
		case types.LengthMedium:
			return c.RuntimeMinutes >= shortMaxMinutes && c.RuntimeMinutes <= mediumMaxMinutes
		case types.LengthLong:
			return c.RuntimeMinutes > mediumMaxMinutes
		}
	case types.KindSeries:
		if c.SeasonCount <= 0 {
			return false
		}
		switch pref {
		case types.LengthShort:
			return c.SeasonCount <= shortMaxSeasons
		case types.LengthMedium:
			return c.SeasonCount > shortMaxSeasons && c.SeasonCount <= mediumMaxSeasons
		case types.LengthLong:
			return c.SeasonCount > mediumMaxSeasons
		}
	}
	return false
}

// criticScore extracts the critic rating used against MinRating.
func criticScore(c *types.Candidate) (float64, bool) {
	if c.Ratings == nil || c.Ratings.CriticScore == nil {
		return 0, false
	}
	return *c.Ratings.CriticScore, true
}

// overlapCount counts how many candidate genres appear in the given set.
func overlapCount(genres, set []string) int {
	if len(genres) == 0 || len(set) == 0 {
		return 0
	}
	members := make(map[string]bool, len(set))
	for _, g := range set {
		members[g] = true
	}
	count := 0
	for _, g := range genres {
		if members[g] {
			count++
		}
	}
	return count
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
