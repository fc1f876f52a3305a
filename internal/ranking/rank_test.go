package ranking

import (
	"testing"

	"github.com/jonathan/oracle/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(id string, score float64) types.Candidate {
	return types.Candidate{ID: id, PersonalScore: &score}
}

func TestRank_DescendingByScore(t *testing.T) {
	in := []types.Candidate{
		scored("low", 0.40),
		scored("high", 0.95),
		scored("mid", 0.70),
	}

	out := Rank(in)

	require.Len(t, out, 3)
	assert.Equal(t, "high", out[0].ID)
	assert.Equal(t, "mid", out[1].ID)
	assert.Equal(t, "low", out[2].ID)
}

func TestRank_TieKeepsArrivalOrder(t *testing.T) {
	in := []types.Candidate{
		scored("first", 0.800),
		scored("second", 0.805), // within the 0.01 window of "first"
		scored("third", 0.797),  // within the window of both
	}

	out := Rank(in)

	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
	assert.Equal(t, "third", out[2].ID)
}

func TestRank_SmallButClearGapReorders(t *testing.T) {
	in := []types.Candidate{
		scored("lower", 0.80),
		scored("higher", 0.815), // outside the tie window
	}

	out := Rank(in)

	assert.Equal(t, "higher", out[0].ID)
	assert.Equal(t, "lower", out[1].ID)
}

func TestRank_InputNotMutated(t *testing.T) {
	in := []types.Candidate{
		scored("a", 0.2),
		scored("b", 0.9),
	}

	out := Rank(in)

	assert.Equal(t, "a", in[0].ID)
	assert.Equal(t, "b", in[1].ID)
	assert.Equal(t, "b", out[0].ID)
}

func TestRank_UnscoredSinkToBottom(t *testing.T) {
	in := []types.Candidate{
		{ID: "unscored"},
		scored("scored", 0.5),
	}

	out := Rank(in)

	assert.Equal(t, "scored", out[0].ID)
	assert.Equal(t, "unscored", out[1].ID)
}

func TestRank_EmptyBatch(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
