package mapper

import (
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/field"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/config"
)

// score fills the builder's pre-enrichment score with the configured
// strategy. instances is indexed by query.MatchType.
func (m *Mapper) score(b *matchBuilder, cp *ontology.ConceptProcessed, instances [][]query.Instance) {
	flat := flattened(cp)
	if m.cfg.Strategy == config.StrategyAverage {
		m.average(b, cp, instances, flat)
	} else {
		m.best(b, cp, instances, flat)
	}
	b.Score = clamp(b.Score)
}

// best keeps the highest normalised field score.
func (m *Mapper) best(b *matchBuilder, cp *ontology.ConceptProcessed, instances [][]query.Instance, flat []field.Sequence) {
	for _, t := range query.MatchTypes() {
		n := m.normalisers[t]
		if n <= 0 || len(instances[t]) == 0 {
			continue
		}
		r := m.matchField(cp, t, instances[t], flat)
		s := clamp(r.score * n)
		if s > b.Score {
			b.Score = s
			b.ConceptMatch = r.concept
			b.QueryMatch = r.query
		}
	}
}

// average takes the weighted mean over the non-empty fields with a positive
// weight. Empty fields are left out of the mean rather than counted as zero.
func (m *Mapper) average(b *matchBuilder, cp *ontology.ConceptProcessed, instances [][]query.Instance, flat []field.Sequence) {
	var sum, weights float64
	for _, t := range query.MatchTypes() {
		w := m.averageWeights[t]
		if w <= 0 || len(instances[t]) == 0 {
			continue
		}
		r := m.matchField(cp, t, instances[t], flat)
		s := r.score
		if a := m.cfg.AverageScaling; a > 0 && a != 1 {
			s = math.Pow(s, a)
		}
		sum += w * s
		weights += w
		b.Fields = append(b.Fields, FieldScore{
			Type:         t,
			Score:        r.score,
			ConceptMatch: r.concept,
			QueryMatch:   r.query,
		})
		if r.score > b.BestOneScore {
			b.BestOneScore = r.score
			b.ConceptMatch = r.concept
			b.QueryMatch = r.query
		}
	}
	if weights > 0 {
		b.Score = sum / weights
	}
	sort.SliceStable(b.Fields, func(i, j int) bool {
		return b.Fields[i].Score > b.Fields[j].Score
	})
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
