// Package token aligns two token sequences, producing scored (to, from)
// candidate pairs. Adjacent tokens on one side may be joined into a compound
// to catch words that were split or merged differently in the two texts.
package token

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/approx"
)

type Params struct {
	// CompoundWords is the maximum number of extra tokens joined on one side.
	CompoundWords int
	// MismatchMultiplier is the score lost per edit, relative to length.
	MismatchMultiplier float64
	// MatchMinimum is the lowest score a single-token match may have.
	MatchMinimum float64
}

// Candidate is a matched token pair with its score in (0,1].
type Candidate struct {
	To    int
	From  int
	Score float64
}

// Matcher is not safe for concurrent use: it owns an approx.Matcher cache.
type Matcher struct {
	approx *approx.Matcher
}

func New() *Matcher {
	return &Matcher{approx: approx.New()}
}

// Match returns every (to, from) pair covered by a positively scoring window,
// with the best score seen for the pair, ordered by To then From.
func (m *Matcher) Match(to, from []string, p Params) []Candidate {
	if len(to) == 0 || len(from) == 0 {
		return nil
	}
	best := make([]float64, len(to)*len(from))
	record := func(i, j int, score float64) {
		if score > best[i*len(from)+j] {
			best[i*len(from)+j] = score
		}
	}
	for i := range to {
		for j := range from {
			for c := 0; c <= p.CompoundWords && i+c < len(to); c++ {
				score := m.score(strings.Join(to[i:i+c+1], " "), from[j], c, p)
				if score <= 0 {
					continue
				}
				for x := 0; x <= c; x++ {
					record(i+x, j, score)
				}
			}
			for c := 1; c <= p.CompoundWords && j+c < len(from); c++ {
				score := m.score(to[i], strings.Join(from[j:j+c+1], " "), c, p)
				if score <= 0 {
					continue
				}
				for x := 0; x <= c; x++ {
					record(i, j+x, score)
				}
			}
		}
	}
	var out []Candidate
	for k, score := range best {
		if score > 0 {
			out = append(out, Candidate{To: k / len(from), From: k % len(from), Score: score})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].To != out[b].To {
			return out[a].To < out[b].To
		}
		return out[a].From < out[b].From
	})
	return out
}

// budgetEpsilon absorbs rounding in the edit budget, so that 10*(1-0.8)/2
// allows one edit rather than none.
const budgetEpsilon = 1e-9

func (m *Matcher) score(a, b string, span int, p Params) float64 {
	minimum := math.Max(0, math.Min(1, p.MatchMinimum))
	if minimum >= 1 && span == 0 {
		if a == b {
			return 1
		}
		return 0
	}
	multiplier := p.MismatchMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	length := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if length == 0 {
		return 0
	}
	dMax := int(math.Floor(float64(length)*(1-minimum)/multiplier+budgetEpsilon)) + span
	d := m.approx.Improved(a, b, dMax)
	if d == approx.NoMatch {
		return 0
	}
	return 1 - multiplier*float64(d)/float64(length)
}
