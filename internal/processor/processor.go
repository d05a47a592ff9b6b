// Package processor turns raw concepts and queries into the tokenized,
// IDF-weighted form the mapper consumes.
package processor

import (
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/tokens"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/config"
)

// Processor is safe for concurrent use once built.
type Processor struct {
	tokenizer *Tokenizer
	idf       IDF
}

// New builds a Processor. idf may be nil, in which case fields carry no IDF
// vectors.
func New(cfg config.ProcessorConfig, idf IDF) *Processor {
	return &Processor{
		tokenizer: NewTokenizer(cfg.Stemming, cfg.StopWords, cfg.MinTokenLength),
		idf:       idf,
	}
}

// Field tokenizes text as a single unit.
func (p *Processor) Field(text string) tokens.Field {
	ts := p.tokenizer.Tokenize(text)
	return tokens.Field{Tokens: ts, Idfs: p.idf.Weights(ts)}
}

// SentenceFields tokenizes text one sentence at a time, skipping sentences
// without tokens.
func (p *Processor) SentenceFields(text string) []tokens.Field {
	var out []tokens.Field
	for _, s := range Sentences(text) {
		if f := p.Field(s); !f.Empty() {
			out = append(out, f)
		}
	}
	return out
}

func (p *Processor) fields(texts []string) []tokens.Field {
	if len(texts) == 0 {
		return nil
	}
	out := make([]tokens.Field, len(texts))
	for i, t := range texts {
		out[i] = p.Field(t)
	}
	return out
}

// Concept tokenizes c and flattens the fields with a positive multiplier
// into the parallel lists matched by query fields.
func (p *Processor) Concept(c *ontology.Concept, mc config.MapperConfig) *ontology.ConceptProcessed {
	cp := &ontology.ConceptProcessed{
		Label:          p.Field(c.Label),
		ExactSynonyms:  p.fields(c.ExactSynonyms),
		NarrowSynonyms: p.fields(c.NarrowSynonyms),
		BroadSynonyms:  p.fields(c.BroadSynonyms),
		Definition:     p.Field(c.Definition),
		Comment:        p.Field(c.Comment),
		Obsolete:       c.Obsolete,
		DirectParents:  append([]ontology.EdamUri(nil), c.DirectParents...),
		DirectChildren: append([]ontology.EdamUri(nil), c.DirectChildren...),
	}
	flatten := func(f tokens.Field, idf bool, multiplier float64) {
		if multiplier <= 0 || f.Empty() {
			return
		}
		cp.Tokens = append(cp.Tokens, f.Tokens)
		cp.Idfs = append(cp.Idfs, f.Idfs)
		cp.IdfScaling = append(cp.IdfScaling, idf)
		cp.Multipliers = append(cp.Multipliers, multiplier)
	}
	flatten(cp.Label, mc.ConceptIdf.Label, mc.LabelMultiplier)
	for _, f := range cp.ExactSynonyms {
		flatten(f, mc.ConceptIdf.ExactSynonym, mc.ExactSynonymMultiplier)
	}
	for _, f := range cp.NarrowSynonyms {
		flatten(f, mc.ConceptIdf.NarrowBroadSynonym, mc.NarrowBroadSynonymMultiplier)
	}
	for _, f := range cp.BroadSynonyms {
		flatten(f, mc.ConceptIdf.NarrowBroadSynonym, mc.NarrowBroadSynonymMultiplier)
	}
	flatten(cp.Definition, mc.ConceptIdf.Definition, mc.DefinitionMultiplier)
	flatten(cp.Comment, mc.ConceptIdf.Comment, mc.CommentMultiplier)
	return cp
}

// Concepts processes a whole ontology.
func (p *Processor) Concepts(concepts ontology.Concepts, mc config.MapperConfig) ontology.Processed {
	out := make(ontology.Processed, len(concepts))
	for u, c := range concepts {
		out[u] = p.Concept(c, mc)
	}
	return out
}

// Query tokenizes q. Description, webpages, docs, abstracts and fulltexts are
// split into sentences.
func (p *Processor) Query(q *query.Query) *query.QueryProcessed {
	qp := &query.QueryProcessed{
		ID:          q.ID,
		Name:        p.Field(q.Name),
		Keywords:    p.fields(q.Keywords),
		Description: p.SentenceFields(q.Description),
		Annotations: append([]ontology.EdamUri(nil), q.Annotations...),
	}
	for _, w := range q.Webpages {
		qp.Webpages = append(qp.Webpages, p.SentenceFields(w))
	}
	for _, d := range q.Docs {
		qp.Docs = append(qp.Docs, p.SentenceFields(d))
	}
	for _, pub := range q.Publications {
		qp.Publications = append(qp.Publications, query.PublicationProcessed{
			Title:    p.Field(pub.Title),
			Keywords: p.fields(pub.Keywords),
			Mesh:     p.fields(pub.Mesh),
			Efo:      p.mined(pub.Efo),
			Go:       p.mined(pub.Go),
			Abstract: p.SentenceFields(pub.Abstract),
			Fulltext: p.SentenceFields(pub.Fulltext),
		})
	}
	return qp
}

func (p *Processor) mined(terms []query.MinedTerm) []query.MinedField {
	if len(terms) == 0 {
		return nil
	}
	out := make([]query.MinedField, len(terms))
	for i, t := range terms {
		out[i] = query.MinedField{Field: p.Field(t.Term), Frequency: t.Frequency}
	}
	return out
}
