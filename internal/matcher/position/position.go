// Package position rewards candidates whose neighbours in the to sequence
// are matched to neighbouring tokens in the from sequence.
package position

import (
	"math"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/token"
)

// window is how far along the to axis neighbours are looked for.
const window = 3

type Params struct {
	OffBy1       float64
	OffBy2       float64
	MatchScaling float64
	Loss         float64
}

type Scorer struct {
	params  Params
	weights [3]float64
}

func New(p Params) *Scorer {
	return &Scorer{
		params:  p,
		weights: [3]float64{1, p.OffBy1, p.OffBy2},
	}
}

// Adjust returns the candidate scores reduced by the position loss, parallel
// to cands. cands must be ordered by To, as token.Matcher returns them.
func (s *Scorer) Adjust(cands []token.Candidate, toLen, fromLen int) []float64 {
	out := make([]float64, len(cands))
	for i, c := range cands {
		if s.params.Loss <= 0 {
			out[i] = c.Score
			continue
		}
		best := s.Best(cands, i, toLen, fromLen)
		out[i] = math.Max(0, c.Score-s.params.Loss*(1-best))
	}
	return out
}

// Best returns the position score of cands[i] in [0,1]: 1 when either
// sequence has a single token, the best neighbour on the only side at the
// start or end of the to sequence, and the mean of both sides' best
// neighbours in between.
func (s *Scorer) Best(cands []token.Candidate, i, toLen, fromLen int) float64 {
	if toLen <= 1 || fromLen <= 1 {
		return 1
	}
	c := cands[i]
	left, right := 0.0, 0.0
	for n := i - 1; n >= 0 && cands[n].To >= c.To-window; n-- {
		if cands[n].To == c.To {
			continue
		}
		left = math.Max(left, s.neighbour(c, cands[n]))
	}
	for n := i + 1; n < len(cands) && cands[n].To <= c.To+window; n++ {
		if cands[n].To == c.To {
			continue
		}
		right = math.Max(right, s.neighbour(c, cands[n]))
	}
	switch {
	case c.To == 0:
		return right
	case c.To == toLen-1:
		return left
	default:
		return (left + right) / 2
	}
}

func (s *Scorer) neighbour(c, n token.Candidate) float64 {
	dTo := n.To - c.To
	dFrom := n.From - c.From
	offset := abs(dFrom) + abs(dTo)
	if (dTo > 0 && dFrom > 0) || (dTo < 0 && dFrom < 0) {
		offset -= 2
	} else {
		offset--
	}
	if offset < 0 || offset >= len(s.weights) {
		return 0
	}
	weight := s.weights[offset]
	if s.params.MatchScaling > 0 {
		weight *= math.Pow(n.Score, s.params.MatchScaling)
	}
	return weight
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
