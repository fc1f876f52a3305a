package ranking

import (
	"math"
	"sort"

	"github.com/jonathan/oracle/internal/types"
)

// tieWindow treats personal scores closer than this as equal, absorbing
// floating-point noise so that re-renders keep a reproducible order.
const tieWindow = 0.01

// Rank returns a new slice ordered by personal score descending. Scores
// within the tie window keep their original arrival order (stable sort by
// input index). Candidates are not modified.
func Rank(in []types.Candidate) []types.Candidate {
	out := make([]types.Candidate, len(in))
	copy(out, in)

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := personalScoreOf(out[i]), personalScoreOf(out[j])
		if math.Abs(si-sj) < tieWindow {
			// A tie: let the stable sort preserve arrival order.
			return false
		}
		return si > sj
	})

	return out
}

// personalScoreOf reads a candidate's score, treating unscored candidates as 0
// so they sink to the bottom rather than interleaving arbitrarily.
func personalScoreOf(c types.Candidate) float64 {
	if c.PersonalScore == nil {
		return 0
	}
	return *c.PersonalScore
}
