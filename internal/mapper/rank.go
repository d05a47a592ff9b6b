package mapper

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
)

// rank walks the scored concepts best first and selects up to MatchesTop per
// branch. Selection marks the selected concept's relatives removed unless
// inferior parents and children are allowed, and links each selection to the
// relatives already selected in its branch.
func (m *Mapper) rank(q *query.QueryProcessed, builders map[ontology.EdamUri]*matchBuilder) (*Mapping, error) {
	mapping, err := NewMapping(q.ID, m.cfg.MatchesTop, m.branches)
	if err != nil {
		return nil, err
	}
	sorted := sortBuilders(builders)
	excluded := m.excludedAnnotations(q)

	selected := make(map[ontology.Branch][]*matchBuilder, len(m.branches))
	isSelected := make(map[ontology.EdamUri]struct{})
	full := func(br ontology.Branch) bool {
		return len(selected[br]) >= m.cfg.MatchesTop
	}
	allFull := func() bool {
		for _, br := range m.branches {
			if !full(br) {
				return false
			}
		}
		return true
	}

	for _, b := range sorted {
		if allFull() {
			break
		}
		br := b.Uri.Branch
		if full(br) || b.Removed {
			continue
		}
		if b.ExistingAnnotation && !m.cfg.ExistingAnnotations {
			continue
		}
		band := m.band(br, b.Score)
		if !m.bandEnabled(band) {
			continue
		}
		b.Band = band

		if !m.cfg.InferiorParentsChildren {
			for _, u := range ontology.Ancestors(m.concepts, b.Uri) {
				if r, ok := builders[u]; ok {
					r.Removed = true
				}
			}
			for _, u := range ontology.Descendants(m.concepts, b.Uri) {
				if r, ok := builders[u]; ok {
					r.Removed = true
				}
			}
		}

		m.link(b, selected[br], true)
		m.linkExcluded(b, excluded[br])
		selected[br] = append(selected[br], b)
		isSelected[b.Uri] = struct{}{}
	}

	for _, br := range m.branches {
		for _, b := range selected[br] {
			mapping.Add(b.freeze())
		}
	}

	if m.cfg.RemainingAnnotations {
		for _, b := range sorted {
			if !b.ExistingAnnotation {
				continue
			}
			if _, ok := isSelected[b.Uri]; ok {
				continue
			}
			br := b.Uri.Branch
			b.Band = m.band(br, b.Score)
			m.link(b, selected[br], false)
			mapping.AddRemaining(b.freeze())
		}
	}
	return mapping, nil
}

// link records the relations between b and the already selected matches of
// its branch. When mutual is set the selected matches get the reverse
// relation too.
func (m *Mapper) link(b *matchBuilder, selected []*matchBuilder, mutual bool) {
	for _, s := range selected {
		switch {
		case ontology.IsAncestor(m.concepts, s.Uri, b.Uri):
			if s.ExistingAnnotation {
				b.ParentsAnnotation = append(b.ParentsAnnotation, s.Uri)
			} else {
				b.Parents = append(b.Parents, s.Uri)
			}
			if !mutual {
				continue
			}
			if b.ExistingAnnotation {
				s.ChildrenAnnotation = append(s.ChildrenAnnotation, b.Uri)
			} else {
				s.Children = append(s.Children, b.Uri)
			}
		case ontology.IsAncestor(m.concepts, b.Uri, s.Uri):
			if s.ExistingAnnotation {
				b.ChildrenAnnotation = append(b.ChildrenAnnotation, s.Uri)
			} else {
				b.Children = append(b.Children, s.Uri)
			}
			if !mutual {
				continue
			}
			if b.ExistingAnnotation {
				s.ParentsAnnotation = append(s.ParentsAnnotation, b.Uri)
			} else {
				s.Parents = append(s.Parents, b.Uri)
			}
		}
	}
}

// linkExcluded records existing annotations that were kept out of the output
// but are relatives of b.
func (m *Mapper) linkExcluded(b *matchBuilder, excluded []ontology.EdamUri) {
	for _, e := range excluded {
		switch {
		case ontology.IsAncestor(m.concepts, e, b.Uri):
			b.ParentsExcludedAnnotation = append(b.ParentsExcludedAnnotation, e)
		case ontology.IsAncestor(m.concepts, b.Uri, e):
			b.ChildrenExcludedAnnotation = append(b.ChildrenExcludedAnnotation, e)
		}
	}
}

// excludedAnnotations groups the query's existing annotations per branch
// when they are not allowed in the output.
func (m *Mapper) excludedAnnotations(q *query.QueryProcessed) map[ontology.Branch][]ontology.EdamUri {
	out := make(map[ontology.Branch][]ontology.EdamUri)
	if m.cfg.ExistingAnnotations {
		return out
	}
	seen := make(map[ontology.EdamUri]struct{}, len(q.Annotations))
	for _, a := range q.Annotations {
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		if _, ok := m.concepts[a]; !ok {
			continue
		}
		out[a.Branch] = append(out[a.Branch], a)
	}
	for br := range out {
		ontology.SortUris(out[br])
	}
	return out
}

func (m *Mapper) band(br ontology.Branch, score float64) Band {
	t := m.thresholds[br]
	switch {
	case score >= t.Good:
		return BandGood
	case score >= t.Bad:
		return BandMedium
	default:
		return BandBad
	}
}

func (m *Mapper) bandEnabled(b Band) bool {
	switch b {
	case BandGood:
		return m.cfg.OutputGoodScores
	case BandMedium:
		return m.cfg.OutputMediumScores
	default:
		return m.cfg.OutputBadScores
	}
}

// sortBuilders orders by score descending, then concept match precedence,
// then uri so that equal inputs always rank the same.
func sortBuilders(builders map[ontology.EdamUri]*matchBuilder) []*matchBuilder {
	out := make([]*matchBuilder, 0, len(builders))
	for _, b := range builders {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if pa, pb := a.ConceptMatch.Type.Precedence(), b.ConceptMatch.Type.Precedence(); pa != pb {
			return pa < pb
		}
		return a.Uri.Less(b.Uri)
	})
	return out
}
