// Package metrics defines the Prometheus collectors recorded during a batch
// mapping run and writes them out in the node exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Query outcome label values.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// AllBranches is the branch label of whole-batch benchmark values.
const AllBranches = "all"

// Metrics holds all Prometheus collectors of a run.
type Metrics struct {
	QueriesTotal       *prometheus.CounterVec
	MappingDuration    prometheus.Histogram
	MappingsInFlight   prometheus.Gauge
	MatchesTotal       *prometheus.CounterVec
	BenchmarkMeasure   *prometheus.GaugeVec
	BenchmarkTestCount *prometheus.GaugeVec
	ConceptsLoaded     prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edammap_queries_total",
				Help: "Total queries mapped by status (ok, error, timeout).",
			},
			[]string{"status"},
		),
		MappingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "edammap_mapping_duration_seconds",
				Help:    "Time to map a single query in seconds.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		MappingsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "edammap_mappings_in_flight",
				Help: "Number of queries currently being mapped.",
			},
		),
		MatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edammap_matches_total",
				Help: "Total selected matches by branch and score band.",
			},
			[]string{"branch", "band"},
		),
		BenchmarkMeasure: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edammap_benchmark_measure",
				Help: "Benchmark measure averaged over queries with ground truth.",
			},
			[]string{"branch", "measure"},
		),
		BenchmarkTestCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edammap_benchmark_tests",
				Help: "Benchmark true positive, false positive and false negative counts.",
			},
			[]string{"branch", "test"},
		),
		ConceptsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "edammap_concepts_loaded",
				Help: "Number of ontology concepts available to the mapper.",
			},
		),
	}

	for _, c := range []prometheus.Collector{
		m.QueriesTotal,
		m.MappingDuration,
		m.MappingsInFlight,
		m.MatchesTotal,
		m.BenchmarkMeasure,
		m.BenchmarkTestCount,
		m.ConceptsLoaded,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}
	return m, nil
}
