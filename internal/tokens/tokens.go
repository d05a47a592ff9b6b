// Package tokens holds the tokenized, IDF-weighted text unit shared by
// concepts and queries.
package tokens

// Field is one tokenized text unit. Idfs is either nil or parallel to Tokens.
type Field struct {
	Tokens []string  `json:"tokens"`
	Idfs   []float64 `json:"idfs,omitempty"`
}

func (f Field) Empty() bool {
	return len(f.Tokens) == 0
}

// Idf returns the IDF of token i, or 1 when no IDF vector is attached.
func (f Field) Idf(i int) float64 {
	if i < 0 || i >= len(f.Idfs) {
		return 1
	}
	return f.Idfs[i]
}
