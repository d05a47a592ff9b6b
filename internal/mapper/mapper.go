// Package mapper ranks ontology concepts against a processed query. For every
// candidate concept it scores each query field in both directions, combines
// the field scores with the configured strategy, enriches the result with the
// scores of the concept's ancestors and finally selects the top matches per
// branch.
package mapper

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/field"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/position"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/matcher/token"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/tracing"
)

// Mapper is not safe for concurrent use: its aggregator owns an edit
// distance cache. Give every goroutine its own Mapper; the concept map itself
// is only read and can be shared.
type Mapper struct {
	concepts       ontology.Processed
	cfg            config.MapperConfig
	branches       []ontology.Branch
	uris           []ontology.EdamUri
	thresholds     map[ontology.Branch]config.Threshold
	normalisers    []float64
	averageWeights []float64
	aggregator     *field.Aggregator
}

// New fails with ErrInvalidConfiguration if the concept map is absent or the
// configuration does not validate.
func New(concepts ontology.Processed, cfg config.MapperConfig) (*Mapper, error) {
	if concepts == nil {
		return nil, apperrors.New(apperrors.ErrInvalidConfiguration, "ontology concept map is absent")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Mapper{
		concepts:       concepts,
		cfg:            cfg,
		thresholds:     make(map[ontology.Branch]config.Threshold),
		normalisers:    cfg.Normalisers.Values(),
		averageWeights: cfg.AverageWeights.Values(),
	}
	enabled := make(map[ontology.Branch]struct{})
	for _, name := range cfg.Branches {
		b, err := ontology.ParseBranch(name)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInvalidConfiguration, "branches: %v", err)
		}
		if _, dup := enabled[b]; dup {
			continue
		}
		enabled[b] = struct{}{}
		m.branches = append(m.branches, b)
		m.thresholds[b], _ = cfg.Thresholds.For(b.String())
	}
	for _, u := range concepts.SortedUris() {
		if _, ok := enabled[u.Branch]; ok {
			m.uris = append(m.uris, u)
		}
	}
	m.aggregator = field.New(field.Params{
		Token: token.Params{
			CompoundWords:      cfg.CompoundWords,
			MismatchMultiplier: cfg.MismatchMultiplier,
			MatchMinimum:       cfg.MatchMinimum,
		},
		Position: position.Params{
			OffBy1:       cfg.PositionOffBy1,
			OffBy2:       cfg.PositionOffBy2,
			MatchScaling: cfg.PositionMatchScaling,
			Loss:         cfg.PositionLoss,
		},
		IdfScaling:   cfg.IdfScaling,
		ScoreScaling: cfg.ScoreScaling,
	})
	return m, nil
}

// Branches returns the enabled branches in configuration order.
func (m *Mapper) Branches() []ontology.Branch {
	return append([]ontology.Branch(nil), m.branches...)
}

// Map scores every concept of the enabled branches against q and returns the
// selected matches. Identical inputs give identical mappings.
func (m *Mapper) Map(q *query.QueryProcessed) (*Mapping, error) {
	return m.MapContext(context.Background(), q)
}

// MapContext is Map that gives up between concepts once ctx is done.
func (m *Mapper) MapContext(ctx context.Context, q *query.QueryProcessed) (*Mapping, error) {
	if q == nil {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "query is nil")
	}
	existing := make(map[ontology.EdamUri]struct{}, len(q.Annotations))
	for _, a := range q.Annotations {
		existing[a] = struct{}{}
	}
	instances := make([][]query.Instance, query.None)
	for _, t := range query.MatchTypes() {
		instances[t] = q.Instances(t)
	}

	_, span := tracing.StartChildSpan(ctx, "score")
	builders := make(map[ontology.EdamUri]*matchBuilder, len(m.uris))
	for _, uri := range m.uris {
		if err := ctx.Err(); err != nil {
			span.End()
			return nil, fmt.Errorf("mapping query %s: %w", q.ID, err)
		}
		cp := m.concepts[uri]
		b := newMatchBuilder(uri)
		m.score(b, cp, instances)
		b.WithoutPathScore = b.Score
		b.Removed = (cp.Obsolete && !m.cfg.Obsolete) ||
			(!m.cfg.TopLevel && ontology.IsTopLevel(m.concepts, uri))
		_, b.ExistingAnnotation = existing[uri]
		builders[uri] = b
	}
	span.SetAttr("concepts", len(builders))
	span.End()

	_, span = tracing.StartChildSpan(ctx, "enrich")
	m.enrich(builders)
	span.End()

	_, span = tracing.StartChildSpan(ctx, "rank")
	mapping, err := m.rank(q, builders)
	span.End()
	if err != nil {
		return nil, err
	}
	logger.Component(ctx, "mapper").Debug("query mapped",
		"query", q.ID,
		"candidates", len(builders),
		"selected", selectedCount(mapping),
	)
	return mapping, nil
}

func selectedCount(mapping *Mapping) int {
	n := 0
	for _, b := range mapping.branches {
		n += mapping.Len(b)
	}
	return n
}
