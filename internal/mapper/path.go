package mapper

import (
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
)

// enrich mixes every concept's score with the best score of its ancestor
// chains. A chain's score is the parentWeight^level weighted mean of the
// pre-enrichment scores of its concepts, taken from the concept up to a root.
// Only ancestors that were themselves scored take part; removed concepts do.
func (m *Mapper) enrich(builders map[ontology.EdamUri]*matchBuilder) {
	pw, w := m.cfg.PathWeight, m.cfg.ParentWeight
	if pw <= 0 || w <= 0 {
		return
	}
	for _, uri := range m.uris {
		b := builders[uri]
		best, ok := m.bestChain(builders, uri, w)
		if !ok {
			continue
		}
		b.Score = clamp((b.WithoutPathScore + pw*best) / (1 + pw))
	}
}

// bestChain returns the best chain score above uri, false when uri has no
// scored parent.
func (m *Mapper) bestChain(builders map[ontology.EdamUri]*matchBuilder, uri ontology.EdamUri, w float64) (float64, bool) {
	onPath := map[ontology.EdamUri]struct{}{uri: {}}
	best, found := 0.0, false
	var walk func(u ontology.EdamUri, factor, sum, norm float64)
	walk = func(u ontology.EdamUri, factor, sum, norm float64) {
		extended := false
		for _, p := range m.concepts.Parents(u) {
			parent, ok := builders[p]
			if !ok {
				continue
			}
			if _, cyclic := onPath[p]; cyclic {
				continue
			}
			extended = true
			onPath[p] = struct{}{}
			f := factor * w
			walk(p, f, sum+f*parent.WithoutPathScore, norm+f)
			delete(onPath, p)
		}
		if !extended && norm > 0 {
			if s := sum / norm; !found || s > best {
				best = s
			}
			found = true
		}
	}
	walk(uri, 1, 0, 0)
	return best, found
}
