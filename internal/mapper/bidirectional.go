package mapper

import (
	"math"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/field"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/tokens"
)

type fieldResult struct {
	score   float64
	concept ConceptMatch
	query   QueryMatch
}

// matchField scores one query field type against a concept in both
// directions and combines them with the concept and query weights.
func (m *Mapper) matchField(cp *ontology.ConceptProcessed, t query.MatchType, instances []query.Instance, flattened []field.Sequence) fieldResult {
	res := fieldResult{
		concept: ConceptMatch{Type: ConceptNone, SynonymIndex: -1},
		query:   QueryMatch{Type: t, Index: -1, SubIndex: -1},
	}
	cw, qw := m.cfg.ConceptWeight, m.cfg.QueryWeight
	if cw+qw <= 0 || len(instances) == 0 {
		return res
	}
	var conceptScore, queryScore float64
	if cw > 0 {
		conceptScore, res.concept = m.conceptGivenQuery(cp, instances)
	}
	if qw > 0 {
		queryScore, res.query = m.queryGivenConcept(t, instances, flattened)
	}
	res.score = (cw*conceptScore + qw*queryScore) / (cw + qw)
	return res
}

// conceptGivenQuery measures how much of a concept field is found in the
// query field. Only the best concept field is kept; on ties the earlier field
// in label, exact, narrow, broad, definition, comment order wins.
func (m *Mapper) conceptGivenQuery(cp *ontology.ConceptProcessed, instances []query.Instance) (float64, ConceptMatch) {
	froms := make([]field.Sequence, len(instances))
	for i, inst := range instances {
		froms[i] = field.Sequence{Field: inst.Field, IdfEnabled: m.cfg.QueryIdf, Multiplier: 1}
	}

	best := 0.0
	match := ConceptMatch{Type: ConceptNone, SynonymIndex: -1}
	consider := func(f tokens.Field, idf bool, multiplier float64, t ConceptMatchType, index int) {
		if multiplier <= 0 || f.Empty() {
			return
		}
		score := m.aggregator.Score(field.Sequence{Field: f, IdfEnabled: idf}, froms, multiplier)
		if score > best {
			best = score
			match = ConceptMatch{Type: t, SynonymIndex: index}
		}
	}

	idf := m.cfg.ConceptIdf
	consider(cp.Label, idf.Label, m.cfg.LabelMultiplier, ConceptLabel, -1)
	for i, f := range cp.ExactSynonyms {
		consider(f, idf.ExactSynonym, m.cfg.ExactSynonymMultiplier, ConceptExactSynonym, i)
	}
	for i, f := range cp.NarrowSynonyms {
		consider(f, idf.NarrowBroadSynonym, m.cfg.NarrowBroadSynonymMultiplier, ConceptNarrowSynonym, i)
	}
	for i, f := range cp.BroadSynonyms {
		consider(f, idf.NarrowBroadSynonym, m.cfg.NarrowBroadSynonymMultiplier, ConceptBroadSynonym, i)
	}
	consider(cp.Definition, idf.Definition, m.cfg.DefinitionMultiplier, ConceptDefinition, -1)
	consider(cp.Comment, idf.Comment, m.cfg.CommentMultiplier, ConceptComment, -1)
	return best, match
}

// queryGivenConcept measures how much of each query field instance is found
// in the concept, keeping the best instance.
func (m *Mapper) queryGivenConcept(t query.MatchType, instances []query.Instance, flattened []field.Sequence) (float64, QueryMatch) {
	best := 0.0
	match := QueryMatch{Type: t, Index: -1, SubIndex: -1}
	for _, inst := range instances {
		score := m.aggregator.Score(field.Sequence{Field: inst.Field, IdfEnabled: m.cfg.QueryIdf}, flattened, 1)
		if inst.Mined {
			score *= m.minedFactor(inst.Frequency)
		}
		if score > best {
			best = score
			match = QueryMatch{Type: t, Index: inst.Index, SubIndex: inst.SubIndex}
		}
	}
	return best, match
}

// minedFactor stands in for the position information mined terms lack: the
// term's fulltext frequency under the same exponent as field scores.
func (m *Mapper) minedFactor(frequency float64) float64 {
	frequency = math.Max(0, math.Min(1, frequency))
	s := m.cfg.ScoreScaling
	if s > 0 && s != 1 {
		return math.Pow(frequency, s)
	}
	return frequency
}

// flattened turns the concept's parallel field lists into from sequences.
func flattened(cp *ontology.ConceptProcessed) []field.Sequence {
	out := make([]field.Sequence, 0, len(cp.Tokens))
	for i, ts := range cp.Tokens {
		seq := field.Sequence{Field: tokens.Field{Tokens: ts}, Multiplier: 1}
		if i < len(cp.Idfs) {
			seq.Idfs = cp.Idfs[i]
		}
		if i < len(cp.IdfScaling) {
			seq.IdfEnabled = cp.IdfScaling[i]
		}
		if i < len(cp.Multipliers) {
			seq.Multiplier = cp.Multipliers[i]
		}
		out = append(out, seq)
	}
	return out
}
