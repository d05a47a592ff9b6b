// Package field scores one token sequence against one or more others,
// combining token alignment, position scoring and IDF weighting.
package field

import (
	"math"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/position"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/token"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/tokens"
)

// Sequence is a token sequence taking part in a field comparison. Multiplier
// is only read for from sequences.
type Sequence struct {
	tokens.Field
	IdfEnabled bool
	Multiplier float64
}

type Params struct {
	Token        token.Params
	Position     position.Params
	IdfScaling   float64
	ScoreScaling float64
}

// Aggregator is not safe for concurrent use.
type Aggregator struct {
	params   Params
	tokens   *token.Matcher
	position *position.Scorer
}

func New(p Params) *Aggregator {
	return &Aggregator{
		params:   p,
		tokens:   token.New(),
		position: position.New(p.Position),
	}
}

// Score returns how well to is covered by froms, in [0,1]. For every to token
// the best match over all from sequences counts; the per-token bests are IDF
// weighted, averaged over the length of to, raised to ScoreScaling and
// multiplied by multiplier.
func (a *Aggregator) Score(to Sequence, froms []Sequence, multiplier float64) float64 {
	if to.Empty() || multiplier <= 0 {
		return 0
	}
	best := make([]float64, len(to.Tokens))
	for _, from := range froms {
		if from.Empty() || from.Multiplier <= 0 {
			continue
		}
		a.bestPerToken(to, from, best)
	}

	sum := 0.0
	for i, b := range best {
		if b == 0 {
			continue
		}
		if to.IdfEnabled {
			b *= a.idfWeight(to.Idf(i))
		}
		sum += b
	}
	score := sum / float64(len(to.Tokens))
	if a.scaling() {
		score = math.Pow(score, a.params.ScoreScaling)
	}
	return clamp(score * multiplier)
}

func (a *Aggregator) bestPerToken(to, from Sequence, best []float64) {
	cands := a.tokens.Match(to.Tokens, from.Tokens, a.params.Token)
	if len(cands) == 0 {
		return
	}
	adjusted := a.position.Adjust(cands, len(to.Tokens), len(from.Tokens))

	multiplier := from.Multiplier
	if a.scaling() {
		multiplier = math.Pow(multiplier, 1/a.params.ScoreScaling)
	}

	current, running := -1, 0.0
	commit := func() {
		if current < 0 {
			return
		}
		if v := running * multiplier; v > best[current] {
			best[current] = v
		}
	}
	for i, c := range cands {
		score := adjusted[i]
		if from.IdfEnabled {
			score *= a.idfWeight(from.Idf(c.From))
		}
		if c.To != current {
			commit()
			current, running = c.To, 0
		}
		if score > running {
			running = score
		}
	}
	commit()
}

func (a *Aggregator) idfWeight(idf float64) float64 {
	if a.params.IdfScaling == 0 {
		return 1
	}
	return math.Pow(idf, a.params.IdfScaling)
}

// scaling reports whether ScoreScaling changes scores; 0 and 1 are no-ops.
func (a *Aggregator) scaling() bool {
	return a.params.ScoreScaling > 0 && a.params.ScoreScaling != 1
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
