package query

import (
	"fmt"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
)

// MatchType identifies the query field a concept was matched through.
type MatchType int

const (
	Name MatchType = iota
	Keyword
	Description
	Webpage
	Doc
	PublicationTitle
	PublicationKeyword
	PublicationMesh
	PublicationEfo
	PublicationGo
	PublicationAbstract
	PublicationFulltext
	None
)

var matchTypeInfo = [...]struct {
	name        string
	label       string
	publication bool
}{
	Name:                {"name", "Name", false},
	Keyword:             {"keyword", "Keyword", false},
	Description:         {"description", "Description", false},
	Webpage:             {"webpage", "Webpage", false},
	Doc:                 {"doc", "Doc", false},
	PublicationTitle:    {"publication_title", "Publication title", true},
	PublicationKeyword:  {"publication_keyword", "Publication keyword", true},
	PublicationMesh:     {"publication_mesh", "Publication MeSH", true},
	PublicationEfo:      {"publication_efo", "Publication EFO", true},
	PublicationGo:       {"publication_go", "Publication GO", true},
	PublicationAbstract: {"publication_abstract", "Publication abstract", true},
	PublicationFulltext: {"publication_fulltext", "Publication fulltext", true},
	None:                {"none", "None", false},
}

// MatchTypes returns every matchable field type, None excluded.
func MatchTypes() []MatchType {
	out := make([]MatchType, 0, int(None))
	for t := Name; t < None; t++ {
		out = append(out, t)
	}
	return out
}

func (t MatchType) String() string {
	if t < Name || t > None {
		return fmt.Sprintf("match_type(%d)", int(t))
	}
	return matchTypeInfo[t].name
}

func (t MatchType) Label() string {
	if t < Name || t > None {
		return t.String()
	}
	return matchTypeInfo[t].label
}

func (t MatchType) IsPublication() bool {
	return t >= Name && t <= None && matchTypeInfo[t].publication
}

func ParseMatchType(s string) (MatchType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t := Name; t <= None; t++ {
		if matchTypeInfo[t].name == s {
			return t, nil
		}
	}
	return None, apperrors.Newf(apperrors.ErrInvalidInput, "unknown query match type %q", s)
}

func (t MatchType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *MatchType) UnmarshalText(text []byte) error {
	parsed, err := ParseMatchType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
