package position

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/token"
)

var params = Params{OffBy1: 0.35, OffBy2: 0.05, MatchScaling: 0, Loss: 0.4}

func TestSingletonHasFullPositionScore(t *testing.T) {
	s := New(params)
	cands := []token.Candidate{{To: 0, From: 2, Score: 1}}
	assert.Equal(t, 1.0, s.Best(cands, 0, 1, 5))
	assert.Equal(t, 1.0, s.Best(cands, 0, 4, 1))
	assert.Equal(t, []float64{1}, s.Adjust(cands, 1, 5))
}

func TestInOrderNeighbours(t *testing.T) {
	s := New(params)
	cands := []token.Candidate{
		{To: 0, From: 0, Score: 1},
		{To: 1, From: 1, Score: 1},
		{To: 2, From: 2, Score: 1},
	}
	assert.Equal(t, 1.0, s.Best(cands, 0, 3, 3))
	assert.Equal(t, 1.0, s.Best(cands, 1, 3, 3))
	assert.Equal(t, 1.0, s.Best(cands, 2, 3, 3))
	assert.Equal(t, []float64{1, 1, 1}, s.Adjust(cands, 3, 3))
}

func TestSwappedNeighboursAreOffByOne(t *testing.T) {
	s := New(params)
	cands := []token.Candidate{
		{To: 0, From: 1, Score: 1},
		{To: 1, From: 0, Score: 1},
	}
	assert.InDelta(t, 0.35, s.Best(cands, 0, 2, 2), 1e-9)
	adjusted := s.Adjust(cands, 2, 2)
	assert.InDelta(t, 1-0.4*0.65, adjusted[0], 1e-9)
}

func TestGapIsOffByTwo(t *testing.T) {
	s := New(params)
	cands := []token.Candidate{
		{To: 0, From: 0, Score: 1},
		{To: 1, From: 3, Score: 1},
	}
	// |3| + 1 - 2 = 2
	assert.InDelta(t, 0.05, s.Best(cands, 0, 2, 4), 1e-9)
}

func TestInteriorAveragesBothSides(t *testing.T) {
	s := New(params)
	cands := []token.Candidate{
		{To: 0, From: 0, Score: 1},
		{To: 1, From: 1, Score: 1},
	}
	// To 1 of 3 has a perfect left neighbour and nothing on the right.
	assert.InDelta(t, 0.5, s.Best(cands, 1, 3, 3), 1e-9)
}

func TestMatchScalingWeighsNeighbourScore(t *testing.T) {
	p := params
	p.MatchScaling = 1
	s := New(p)
	cands := []token.Candidate{
		{To: 0, From: 0, Score: 1},
		{To: 1, From: 1, Score: 0.5},
	}
	assert.InDelta(t, 0.5, s.Best(cands, 0, 2, 2), 1e-9)
	assert.InDelta(t, 1, s.Best(cands, 1, 2, 2), 1e-9)
}

func TestAdjustFloorsAtZero(t *testing.T) {
	p := params
	p.Loss = 1
	s := New(p)
	cands := []token.Candidate{{To: 0, From: 0, Score: 0.6}}
	assert.Equal(t, []float64{0}, s.Adjust(cands, 3, 3))
}

func TestNoLossKeepsScores(t *testing.T) {
	p := params
	p.Loss = 0
	s := New(p)
	cands := []token.Candidate{{To: 1, From: 4, Score: 0.7}}
	assert.Equal(t, []float64{0.7}, s.Adjust(cands, 3, 6))
}
