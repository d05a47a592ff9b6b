package processor

import (
	"strings"
	"unicode"

	"github.com/surgebase/porter2"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {}, "this": {}, "but": {}, "they": {},
	"have": {}, "had": {}, "what": {}, "when": {}, "where": {},
	"who": {}, "which": {}, "their": {}, "if": {}, "each": {},
	"do": {}, "not": {}, "no": {}, "so": {}, "can": {}, "into": {},
	"these": {}, "those": {}, "using": {}, "via": {},
}

// Tokenizer lower-cases text, splits it on non-alphanumeric boundaries and
// optionally drops stop words and stems.
type Tokenizer struct {
	stemming       bool
	stopWords      bool
	minTokenLength int
}

func NewTokenizer(stemming, stopWords bool, minTokenLength int) *Tokenizer {
	return &Tokenizer{stemming: stemming, stopWords: stopWords, minTokenLength: minTokenLength}
}

// Tokenize returns the normalised terms of text in order.
func (t *Tokenizer) Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(words))
	for _, word := range words {
		if len([]rune(word)) < t.minTokenLength {
			continue
		}
		if t.stopWords {
			if _, isStop := stopWords[word]; isStop {
				continue
			}
		}
		if t.stemming {
			word = porter2.Stem(word)
		}
		if word == "" {
			continue
		}
		out = append(out, word)
	}
	return out
}

// Sentences splits text at sentence terminators followed by whitespace and at
// line breaks. Empty sentences are dropped.
func Sentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	flush := func(end int) {
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			out = append(out, s)
		}
		start = end
	}
	for i, r := range runes {
		switch {
		case r == '\n' || r == '\r':
			flush(i + 1)
		case r == '.' || r == '!' || r == '?':
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				flush(i + 1)
			}
		}
	}
	flush(len(runes))
	return out
}
