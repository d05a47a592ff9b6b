package ontology

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/tokens"
)

// Concept is an ontology node as delivered by the ontology loader.
type Concept struct {
	Label          string    `json:"label"`
	ExactSynonyms  []string  `json:"exactSynonyms,omitempty"`
	NarrowSynonyms []string  `json:"narrowSynonyms,omitempty"`
	BroadSynonyms  []string  `json:"broadSynonyms,omitempty"`
	Definition     string    `json:"definition,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	Obsolete       bool      `json:"obsolete,omitempty"`
	DirectParents  []EdamUri `json:"directParents,omitempty"`
	DirectChildren []EdamUri `json:"directChildren,omitempty"`
}

// ConceptProcessed is the tokenized form of a Concept. The flattened lists
// (Tokens, Idfs, IdfScaling, Multipliers) are parallel and hold every field
// with a positive multiplier, in label, exact, narrow, broad, definition,
// comment order; they are what a query field is matched against.
type ConceptProcessed struct {
	Label          tokens.Field   `json:"label"`
	ExactSynonyms  []tokens.Field `json:"exactSynonyms,omitempty"`
	NarrowSynonyms []tokens.Field `json:"narrowSynonyms,omitempty"`
	BroadSynonyms  []tokens.Field `json:"broadSynonyms,omitempty"`
	Definition     tokens.Field   `json:"definition"`
	Comment        tokens.Field   `json:"comment"`

	Tokens      [][]string  `json:"tokens"`
	Idfs        [][]float64 `json:"idfs"`
	IdfScaling  []bool      `json:"idfScaling"`
	Multipliers []float64   `json:"multipliers"`

	Obsolete       bool      `json:"obsolete,omitempty"`
	DirectParents  []EdamUri `json:"directParents,omitempty"`
	DirectChildren []EdamUri `json:"directChildren,omitempty"`
}

// Concepts is the loaded ontology.
type Concepts map[EdamUri]*Concept

func (c Concepts) Parents(u EdamUri) []EdamUri {
	if concept, ok := c[u]; ok {
		return concept.DirectParents
	}
	return nil
}

func (c Concepts) Children(u EdamUri) []EdamUri {
	if concept, ok := c[u]; ok {
		return concept.DirectChildren
	}
	return nil
}

// Processed is the tokenized ontology used by the mapper. It is read-only
// once built and may be shared between goroutines.
type Processed map[EdamUri]*ConceptProcessed

func (p Processed) Parents(u EdamUri) []EdamUri {
	if concept, ok := p[u]; ok {
		return concept.DirectParents
	}
	return nil
}

func (p Processed) Children(u EdamUri) []EdamUri {
	if concept, ok := p[u]; ok {
		return concept.DirectChildren
	}
	return nil
}

// SortedUris returns the keys of p in EdamUri order.
func (p Processed) SortedUris() []EdamUri {
	uris := make([]EdamUri, 0, len(p))
	for u := range p {
		uris = append(uris, u)
	}
	SortUris(uris)
	return uris
}

func SortUris(uris []EdamUri) {
	sort.Slice(uris, func(i, j int) bool {
		return uris[i].Less(uris[j])
	})
}
