// Package batch maps many queries concurrently and benchmarks the results
// against the queries' existing annotations.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/benchmark"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/mapper"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/resilience"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/tracing"
)

// Result is the outcome of one query. Mapping is nil when Err is set.
type Result struct {
	QueryID   string
	Mapping   *mapper.Mapping
	Benchmark benchmark.QueryResult
	Duration  time.Duration
	Err       error
}

// Report is the outcome of a run. Results keep the input order; the
// benchmark covers the successfully mapped queries.
type Report struct {
	RunID     string
	Results   []Result
	Benchmark benchmark.Results
	Failed    int
	Duration  time.Duration
}

// Runner maps queries against one shared, read-only ontology.
type Runner struct {
	concepts  ontology.Processed
	mapperCfg config.MapperConfig
	cfg       config.BatchConfig
	metrics   *metrics.Metrics
}

// NewRunner checks the mapper configuration up front. m may be nil.
func NewRunner(concepts ontology.Processed, mapperCfg config.MapperConfig, cfg config.BatchConfig, m *metrics.Metrics) (*Runner, error) {
	if _, err := mapper.New(concepts, mapperCfg); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		return nil, apperrors.Newf(apperrors.ErrInvalidConfiguration, "batch workers must be positive, got %d", cfg.Workers)
	}
	if m != nil {
		m.ConceptsLoaded.Set(float64(len(concepts)))
	}
	return &Runner{concepts: concepts, mapperCfg: mapperCfg, cfg: cfg, metrics: m}, nil
}

// Run maps every query with at most Workers in flight. A failing query is
// recorded in its Result; the run only stops early when FailOnQueryError is
// set or ctx is cancelled, in which case the partial report is returned with
// the error.
func (r *Runner) Run(ctx context.Context, queries []*query.QueryProcessed) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString(), Results: make([]Result, len(queries))}
	ctx = logger.WithRunID(ctx, report.RunID)
	log := logger.Component(ctx, "batch")
	ctx, span := tracing.StartSpan(ctx, "batch", report.RunID)
	span.SetAttr("queries", len(queries))
	log.Info("batch started", "queries", len(queries), "workers", r.cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	var done atomic.Int64

	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		i, q := i, q
		g.Go(func() error {
			res := r.mapOne(gctx, q)
			report.Results[i] = res
			if n := done.Add(1); r.cfg.ProgressEvery > 0 && n%int64(r.cfg.ProgressEvery) == 0 {
				log.Info("batch progress", "done", n, "total", len(queries))
			}
			if res.Err != nil {
				log.Warn("query failed", "query", res.QueryID, "error", res.Err)
				if r.cfg.FailOnQueryError {
					return res.Err
				}
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		err = apperrors.Newf(apperrors.ErrCanceled, "batch run %s: %v", report.RunID, ctx.Err())
	}

	var evaluated []benchmark.QueryResult
	for i, res := range report.Results {
		if res.QueryID == "" && queries[i] != nil {
			report.Results[i].QueryID = queries[i].ID
		}
		if res.Mapping == nil {
			if res.Err == nil {
				report.Results[i].Err = apperrors.New(apperrors.ErrCanceled, "query not mapped before the run stopped")
			}
			report.Failed++
			continue
		}
		evaluated = append(evaluated, res.Benchmark)
	}
	report.Benchmark = benchmark.Aggregate(evaluated)
	report.Duration = time.Since(start)
	r.recordBenchmark(report.Benchmark)
	span.SetAttr("failed", report.Failed)
	span.End()
	span.Log(ctx, log)

	log.Info("batch finished",
		"queries", len(queries),
		"failed", report.Failed,
		"duration", report.Duration,
		"precision", report.Benchmark.Measures.Get(benchmark.Precision),
		"recall", report.Benchmark.Measures.Get(benchmark.Recall),
	)
	if err != nil {
		return report, fmt.Errorf("batch run %s: %w", report.RunID, err)
	}
	return report, nil
}

// mapOne maps a single query with its own Mapper, so an abandoned mapping
// left running after a timeout never shares state with the next query.
func (r *Runner) mapOne(ctx context.Context, q *query.QueryProcessed) Result {
	var res Result
	if q == nil {
		res.Err = apperrors.New(apperrors.ErrInvalidInput, "query is nil")
		r.recordQuery(res)
		return res
	}
	res.QueryID = q.ID
	ctx, span := tracing.StartChildSpan(ctx, "query")
	span.SetAttr("query", q.ID)
	defer span.End()

	if r.metrics != nil {
		r.metrics.MappingsInFlight.Inc()
		defer r.metrics.MappingsInFlight.Dec()
	}
	start := time.Now()
	m, err := mapper.New(r.concepts, r.mapperCfg)
	if err != nil {
		res.Err = err
		r.recordQuery(res)
		return res
	}
	var mapping *mapper.Mapping
	err = resilience.WithTimeout(ctx, r.cfg.QueryTimeout, "query "+q.ID, func(ctx context.Context) error {
		var mapErr error
		mapping, mapErr = m.MapContext(ctx, q)
		return mapErr
	})
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		r.recordQuery(res)
		return res
	}
	res.Mapping = mapping
	res.Benchmark = benchmark.Evaluate(q.Annotations, mapping)
	r.recordQuery(res)
	return res
}

func (r *Runner) recordQuery(res Result) {
	if r.metrics == nil {
		return
	}
	status := metrics.StatusOK
	switch {
	case errors.Is(res.Err, context.DeadlineExceeded):
		status = metrics.StatusTimeout
	case res.Err != nil:
		status = metrics.StatusError
	}
	r.metrics.QueriesTotal.WithLabelValues(status).Inc()
	if res.Err != nil {
		return
	}
	r.metrics.MappingDuration.Observe(res.Duration.Seconds())
	for _, b := range res.Mapping.Branches() {
		for _, match := range res.Mapping.Matches(b) {
			r.metrics.MatchesTotal.WithLabelValues(b.String(), match.Band.String()).Inc()
		}
	}
}

func (r *Runner) recordBenchmark(res benchmark.Results) {
	if r.metrics == nil {
		return
	}
	set := func(branch string, s benchmark.Summary) {
		for _, m := range benchmark.Measures() {
			r.metrics.BenchmarkMeasure.WithLabelValues(branch, m.String()).Set(s.Measures.Get(m))
		}
		for _, t := range benchmark.Tests() {
			r.metrics.BenchmarkTestCount.WithLabelValues(branch, t.String()).Set(float64(s.Counts.Get(t)))
		}
	}
	set(metrics.AllBranches, res.Summary)
	for b, s := range res.Branches {
		set(b.String(), *s)
	}
}
