package ontology

import (
	"fmt"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
)

// Branch is one of the four top-level EDAM categories.
type Branch int

const (
	Topic Branch = iota
	Operation
	Data
	Format
)

var branchInfo = [...]struct {
	name   string
	label  string
	rootID int
}{
	Topic:     {"topic", "Topic", 3},
	Operation: {"operation", "Operation", 4},
	Data:      {"data", "Data", 6},
	Format:    {"format", "Format", 1915},
}

// Branches returns all branches in canonical order.
func Branches() []Branch {
	return []Branch{Topic, Operation, Data, Format}
}

func (b Branch) Valid() bool {
	return b >= Topic && b <= Format
}

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("branch(%d)", int(b))
	}
	return branchInfo[b].name
}

// Label is the human readable branch name.
func (b Branch) Label() string {
	if !b.Valid() {
		return b.String()
	}
	return branchInfo[b].label
}

// Root is the EdamUri of the branch's root concept.
func (b Branch) Root() EdamUri {
	return EdamUri{Branch: b, ID: branchInfo[b].rootID}
}

func ParseBranch(s string) (Branch, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, b := range Branches() {
		if branchInfo[b].name == s {
			return b, nil
		}
	}
	return 0, apperrors.Newf(apperrors.ErrInvalidInput, "unknown branch %q", s)
}

func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "invalid branch %d", int(b))
	}
	return []byte(b.String()), nil
}

func (b *Branch) UnmarshalText(text []byte) error {
	parsed, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
