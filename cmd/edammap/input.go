package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/processor"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
)

// bundle is the JSON input of a run: the raw ontology, an optional IDF table
// keyed by processed token, and the queries to map.
type bundle struct {
	Concepts ontology.Concepts `json:"concepts"`
	IDF      processor.IDF     `json:"idf,omitempty"`
	Queries  []*query.Query    `json:"queries"`
}

// loadBundle reads a bundle from path, or from stdin when path is "-".
func loadBundle(path string) (*bundle, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "opening input %s: %v", path, err)
		}
		defer f.Close()
		r = f
	}
	return decodeBundle(r)
}

func decodeBundle(r io.Reader) (*bundle, error) {
	var b bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "decoding input: %v", err)
	}
	if len(b.Concepts) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "input has no concepts")
	}
	for i, q := range b.Queries {
		if q == nil || q.ID == "" {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, "query %d has no id", i)
		}
	}
	for u, c := range b.Concepts {
		if c == nil {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, "concept %s is null", u.Short())
		}
	}
	return &b, nil
}

func (b *bundle) String() string {
	return fmt.Sprintf("%d concepts, %d queries, %d idf entries", len(b.Concepts), len(b.Queries), len(b.IDF))
}
