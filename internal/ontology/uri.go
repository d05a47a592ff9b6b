package ontology

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
)

const Prefix = "http://edamontology.org/"

// EdamUri identifies a concept. It is a comparable value and is used directly
// as a map key.
type EdamUri struct {
	Branch    Branch
	ID        int
	Qualifier string
}

// ParseEdamUri accepts both the full form
// (http://edamontology.org/topic_0091) and the short form (topic_0091). Any
// text after a further underscore or slash is kept as the qualifier.
func ParseEdamUri(s string) (EdamUri, error) {
	local := strings.TrimPrefix(strings.TrimSpace(s), Prefix)
	branchPart, rest, ok := strings.Cut(local, "_")
	if !ok {
		return EdamUri{}, apperrors.Newf(apperrors.ErrInvalidInput, "malformed EDAM URI %q", s)
	}
	branch, err := ParseBranch(branchPart)
	if err != nil {
		return EdamUri{}, fmt.Errorf("parsing EDAM URI %q: %w", s, err)
	}
	idPart, qualifier := rest, ""
	if i := strings.IndexAny(rest, "_/"); i >= 0 {
		idPart, qualifier = rest[:i], rest[i+1:]
	}
	id, err := strconv.Atoi(idPart)
	if err != nil || id < 0 {
		return EdamUri{}, apperrors.Newf(apperrors.ErrInvalidInput, "malformed EDAM URI id in %q", s)
	}
	return EdamUri{Branch: branch, ID: id, Qualifier: qualifier}, nil
}

func MustParseEdamUri(s string) EdamUri {
	u, err := ParseEdamUri(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Short returns the form without the ontology prefix, e.g. topic_0091.
func (u EdamUri) Short() string {
	s := fmt.Sprintf("%s_%04d", u.Branch, u.ID)
	if u.Qualifier != "" {
		s += "_" + u.Qualifier
	}
	return s
}

func (u EdamUri) String() string {
	return Prefix + u.Short()
}

// Less orders by branch, id and qualifier.
func (u EdamUri) Less(o EdamUri) bool {
	if u.Branch != o.Branch {
		return u.Branch < o.Branch
	}
	if u.ID != o.ID {
		return u.ID < o.ID
	}
	return u.Qualifier < o.Qualifier
}

func (u EdamUri) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *EdamUri) UnmarshalText(text []byte) error {
	parsed, err := ParseEdamUri(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
