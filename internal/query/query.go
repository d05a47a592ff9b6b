// Package query defines the tool descriptions that are mapped to ontology
// concepts, in raw and tokenized form.
package query

import (
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/tokens"
)

// MinedTerm is a term text-mined from a publication together with its
// normalised frequency in the fulltext.
type MinedTerm struct {
	Term      string  `json:"term"`
	Frequency float64 `json:"frequency"`
}

type Publication struct {
	Title    string      `json:"title,omitempty"`
	Keywords []string    `json:"keywords,omitempty"`
	Mesh     []string    `json:"mesh,omitempty"`
	Efo      []MinedTerm `json:"efo,omitempty"`
	Go       []MinedTerm `json:"go,omitempty"`
	Abstract string      `json:"abstract,omitempty"`
	Fulltext string      `json:"fulltext,omitempty"`
}

// Query is a tool description. Annotations are the EDAM concepts the tool is
// already annotated with; benchmarking uses them as ground truth.
type Query struct {
	ID           string             `json:"id"`
	Name         string             `json:"name,omitempty"`
	Keywords     []string           `json:"keywords,omitempty"`
	Description  string             `json:"description,omitempty"`
	Webpages     []string           `json:"webpages,omitempty"`
	Docs         []string           `json:"docs,omitempty"`
	Publications []Publication      `json:"publications,omitempty"`
	Annotations  []ontology.EdamUri `json:"annotations,omitempty"`
}

// MinedField is a tokenized MinedTerm.
type MinedField struct {
	tokens.Field
	Frequency float64 `json:"frequency"`
}

// PublicationProcessed holds the tokenized publication parts. Abstract and
// Fulltext are split into sentences.
type PublicationProcessed struct {
	Title    tokens.Field   `json:"title"`
	Keywords []tokens.Field `json:"keywords,omitempty"`
	Mesh     []tokens.Field `json:"mesh,omitempty"`
	Efo      []MinedField   `json:"efo,omitempty"`
	Go       []MinedField   `json:"go,omitempty"`
	Abstract []tokens.Field `json:"abstract,omitempty"`
	Fulltext []tokens.Field `json:"fulltext,omitempty"`
}

// QueryProcessed is the tokenized Query. Description is split into sentences;
// each webpage and doc is a list of sentences.
type QueryProcessed struct {
	ID           string                 `json:"id"`
	Name         tokens.Field           `json:"name"`
	Keywords     []tokens.Field         `json:"keywords,omitempty"`
	Description  []tokens.Field         `json:"description,omitempty"`
	Webpages     [][]tokens.Field       `json:"webpages,omitempty"`
	Docs         [][]tokens.Field       `json:"docs,omitempty"`
	Publications []PublicationProcessed `json:"publications,omitempty"`
	Annotations  []ontology.EdamUri     `json:"annotations,omitempty"`
}

// Instance is one matchable occurrence of a query field. Index locates the
// occurrence in its list (keyword number, webpage number, publication
// number); SubIndex locates it inside that element (sentence or keyword
// number) and is -1 when not applicable. Frequency is only meaningful when
// Mined is set.
type Instance struct {
	Field     tokens.Field
	Index     int
	SubIndex  int
	Mined     bool
	Frequency float64
}

// Instances returns the non-empty occurrences of the given field type.
func (q *QueryProcessed) Instances(t MatchType) []Instance {
	if q == nil {
		return nil
	}
	var out []Instance
	add := func(f tokens.Field, index, subIndex int) {
		if !f.Empty() {
			out = append(out, Instance{Field: f, Index: index, SubIndex: subIndex})
		}
	}
	addMined := func(f MinedField, index, subIndex int) {
		if !f.Empty() {
			out = append(out, Instance{Field: f.Field, Index: index, SubIndex: subIndex, Mined: true, Frequency: f.Frequency})
		}
	}
	switch t {
	case Name:
		add(q.Name, 0, -1)
	case Keyword:
		for i, f := range q.Keywords {
			add(f, i, -1)
		}
	case Description:
		for i, f := range q.Description {
			add(f, i, -1)
		}
	case Webpage:
		for i, page := range q.Webpages {
			for j, f := range page {
				add(f, i, j)
			}
		}
	case Doc:
		for i, doc := range q.Docs {
			for j, f := range doc {
				add(f, i, j)
			}
		}
	case PublicationTitle:
		for i, p := range q.Publications {
			add(p.Title, i, -1)
		}
	case PublicationKeyword:
		for i, p := range q.Publications {
			for j, f := range p.Keywords {
				add(f, i, j)
			}
		}
	case PublicationMesh:
		for i, p := range q.Publications {
			for j, f := range p.Mesh {
				add(f, i, j)
			}
		}
	case PublicationEfo:
		for i, p := range q.Publications {
			for j, f := range p.Efo {
				addMined(f, i, j)
			}
		}
	case PublicationGo:
		for i, p := range q.Publications {
			for j, f := range p.Go {
				addMined(f, i, j)
			}
		}
	case PublicationAbstract:
		for i, p := range q.Publications {
			for j, f := range p.Abstract {
				add(f, i, j)
			}
		}
	case PublicationFulltext:
		for i, p := range q.Publications {
			for j, f := range p.Fulltext {
				add(f, i, j)
			}
		}
	}
	return out
}
