package mapper

import (
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
)

// ConceptMatchType identifies the concept field a query was matched to.
// Lower values take precedence on ties.
type ConceptMatchType int

const (
	ConceptLabel ConceptMatchType = iota
	ConceptExactSynonym
	ConceptNarrowSynonym
	ConceptBroadSynonym
	ConceptDefinition
	ConceptComment
	ConceptNone
)

var conceptMatchTypeInfo = [...]struct {
	name       string
	precedence int
}{
	ConceptLabel:         {"label", 0},
	ConceptExactSynonym:  {"exact_synonym", 1},
	ConceptNarrowSynonym: {"narrow_synonym", 2},
	ConceptBroadSynonym:  {"broad_synonym", 2},
	ConceptDefinition:    {"definition", 3},
	ConceptComment:       {"comment", 4},
	ConceptNone:          {"none", 5},
}

func (t ConceptMatchType) String() string {
	if t < ConceptLabel || t > ConceptNone {
		return fmt.Sprintf("concept_match_type(%d)", int(t))
	}
	return conceptMatchTypeInfo[t].name
}

// Precedence ranks match types for tie-breaking; narrow and broad synonyms
// share a rank.
func (t ConceptMatchType) Precedence() int {
	if t < ConceptLabel || t > ConceptNone {
		return conceptMatchTypeInfo[ConceptNone].precedence
	}
	return conceptMatchTypeInfo[t].precedence
}

func (t ConceptMatchType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Band classifies a final score against a branch's thresholds.
type Band int

const (
	BandGood Band = iota
	BandMedium
	BandBad
)

func (b Band) String() string {
	switch b {
	case BandGood:
		return "good"
	case BandMedium:
		return "medium"
	default:
		return "bad"
	}
}

func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

type ConceptMatch struct {
	Type ConceptMatchType `json:"type"`
	// SynonymIndex is the position in the synonym list, -1 for other fields.
	SynonymIndex int `json:"synonymIndex"`
}

type QueryMatch struct {
	Type     query.MatchType `json:"type"`
	Index    int             `json:"index"`
	SubIndex int             `json:"subIndex"`
}

// FieldScore is one query field's contribution under the average strategy.
type FieldScore struct {
	Type         query.MatchType `json:"type"`
	Score        float64         `json:"score"`
	ConceptMatch ConceptMatch    `json:"conceptMatch"`
	QueryMatch   QueryMatch      `json:"queryMatch"`
}

// Match is a scored concept suggestion for one query. BestOneScore and Fields
// are only filled by the average strategy.
type Match struct {
	Uri              ontology.EdamUri `json:"uri"`
	Score            float64          `json:"score"`
	BestOneScore     float64          `json:"bestOneScore,omitempty"`
	WithoutPathScore float64          `json:"withoutPathScore"`
	Band             Band             `json:"band"`
	ConceptMatch     ConceptMatch     `json:"conceptMatch"`
	QueryMatch       QueryMatch       `json:"queryMatch"`
	Fields           []FieldScore     `json:"fields,omitempty"`

	Removed            bool `json:"removed,omitempty"`
	ExistingAnnotation bool `json:"existingAnnotation,omitempty"`

	Parents                    []ontology.EdamUri `json:"parents,omitempty"`
	ParentsAnnotation          []ontology.EdamUri `json:"parentsAnnotation,omitempty"`
	ParentsExcludedAnnotation  []ontology.EdamUri `json:"parentsExcludedAnnotation,omitempty"`
	Children                   []ontology.EdamUri `json:"children,omitempty"`
	ChildrenAnnotation         []ontology.EdamUri `json:"childrenAnnotation,omitempty"`
	ChildrenExcludedAnnotation []ontology.EdamUri `json:"childrenExcludedAnnotation,omitempty"`
}

// matchBuilder accumulates a Match during one Map call. It is owned by that
// call alone and is frozen into a Match when ranking completes.
type matchBuilder struct {
	Match
}

func newMatchBuilder(uri ontology.EdamUri) *matchBuilder {
	return &matchBuilder{Match: Match{
		Uri:          uri,
		ConceptMatch: ConceptMatch{Type: ConceptNone, SynonymIndex: -1},
		QueryMatch:   QueryMatch{Type: query.None, Index: -1, SubIndex: -1},
	}}
}

func (b *matchBuilder) freeze() Match {
	m := b.Match
	m.Fields = append([]FieldScore(nil), b.Fields...)
	m.Parents = cloneUris(b.Parents)
	m.ParentsAnnotation = cloneUris(b.ParentsAnnotation)
	m.ParentsExcludedAnnotation = cloneUris(b.ParentsExcludedAnnotation)
	m.Children = cloneUris(b.Children)
	m.ChildrenAnnotation = cloneUris(b.ChildrenAnnotation)
	m.ChildrenExcludedAnnotation = cloneUris(b.ChildrenExcludedAnnotation)
	return m
}

func cloneUris(in []ontology.EdamUri) []ontology.EdamUri {
	if len(in) == 0 {
		return nil
	}
	return append([]ontology.EdamUri(nil), in...)
}
