package mapper

import (
	"encoding/json"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
)

// Mapping is the ranked result for one query: per branch at most Capacity
// matches, plus the query's existing annotations that were not selected.
type Mapping struct {
	queryID   string
	capacity  int
	branches  []ontology.Branch
	matches   map[ontology.Branch][]Match
	remaining map[ontology.Branch][]Match
}

// NewMapping fails with ErrInvalidConfiguration if matchesTop is negative or
// no branch is given.
func NewMapping(queryID string, matchesTop int, branches []ontology.Branch) (*Mapping, error) {
	if matchesTop < 0 {
		return nil, apperrors.Newf(apperrors.ErrInvalidConfiguration, "matchesTop must not be negative, got %d", matchesTop)
	}
	if len(branches) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidConfiguration, "mapping needs at least one branch")
	}
	m := &Mapping{
		queryID:   queryID,
		capacity:  matchesTop,
		matches:   make(map[ontology.Branch][]Match, len(branches)),
		remaining: make(map[ontology.Branch][]Match, len(branches)),
	}
	for _, b := range branches {
		if _, dup := m.matches[b]; dup {
			continue
		}
		m.branches = append(m.branches, b)
		m.matches[b] = make([]Match, 0, matchesTop)
	}
	return m, nil
}

func (m *Mapping) QueryID() string {
	return m.queryID
}

func (m *Mapping) Capacity() int {
	return m.capacity
}

func (m *Mapping) Branches() []ontology.Branch {
	return append([]ontology.Branch(nil), m.branches...)
}

func (m *Mapping) Enabled(b ontology.Branch) bool {
	_, ok := m.matches[b]
	return ok
}

// Add appends a match to its branch. It reports false when the branch is
// not enabled or already full.
func (m *Mapping) Add(match Match) bool {
	b := match.Uri.Branch
	list, ok := m.matches[b]
	if !ok || len(list) >= m.capacity {
		return false
	}
	m.matches[b] = append(list, match)
	return true
}

func (m *Mapping) AddRemaining(match Match) bool {
	if !m.Enabled(match.Uri.Branch) {
		return false
	}
	m.remaining[match.Uri.Branch] = append(m.remaining[match.Uri.Branch], match)
	return true
}

// Matches returns the ranked matches of a branch. The slice is a copy.
func (m *Mapping) Matches(b ontology.Branch) []Match {
	return append([]Match(nil), m.matches[b]...)
}

func (m *Mapping) Remaining(b ontology.Branch) []Match {
	return append([]Match(nil), m.remaining[b]...)
}

func (m *Mapping) Len(b ontology.Branch) int {
	return len(m.matches[b])
}

type mappingJSON struct {
	Query     string                      `json:"query"`
	Matches   map[ontology.Branch][]Match `json:"matches"`
	Remaining map[ontology.Branch][]Match `json:"remaining,omitempty"`
}

func (m *Mapping) MarshalJSON() ([]byte, error) {
	out := mappingJSON{Query: m.queryID, Matches: m.matches}
	for b, list := range m.remaining {
		if len(list) == 0 {
			continue
		}
		if out.Remaining == nil {
			out.Remaining = make(map[ontology.Branch][]Match)
		}
		out.Remaining[b] = list
	}
	return json.Marshal(out)
}
