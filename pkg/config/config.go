// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for the
// mapper knobs, text processing, batch execution, logging and metrics.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
)

// Config is the top-level application configuration.
type Config struct {
	Mapper    MapperConfig    `yaml:"mapper"`
	Processor ProcessorConfig `yaml:"processor"`
	Batch     BatchConfig     `yaml:"batch"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// Strategy names accepted by MapperConfig.Strategy.
const (
	StrategyBest    = "best"
	StrategyAverage = "average"
)

// MapperConfig holds every knob of the matching, scoring and ranking engine.
type MapperConfig struct {
	// Algorithm
	CompoundWords        int     `yaml:"compoundWords"`
	MismatchMultiplier   float64 `yaml:"mismatchMultiplier"`
	MatchMinimum         float64 `yaml:"matchMinimum"`
	PositionOffBy1       float64 `yaml:"positionOffBy1"`
	PositionOffBy2       float64 `yaml:"positionOffBy2"`
	PositionMatchScaling float64 `yaml:"positionMatchScaling"`
	PositionLoss         float64 `yaml:"positionLoss"`
	ScoreScaling         float64 `yaml:"scoreScaling"`
	ConceptWeight        float64 `yaml:"conceptWeight"`
	QueryWeight          float64 `yaml:"queryWeight"`

	// Concept field multipliers
	LabelMultiplier              float64 `yaml:"labelMultiplier"`
	ExactSynonymMultiplier       float64 `yaml:"exactSynonymMultiplier"`
	NarrowBroadSynonymMultiplier float64 `yaml:"narrowBroadSynonymMultiplier"`
	DefinitionMultiplier         float64 `yaml:"definitionMultiplier"`
	CommentMultiplier            float64 `yaml:"commentMultiplier"`

	// IDF
	ConceptIdf ConceptIdfConfig `yaml:"conceptIdf"`
	QueryIdf   bool             `yaml:"queryIdf"`
	IdfScaling float64          `yaml:"idfScaling"`

	// Mapping strategy
	Strategy       string            `yaml:"strategy"`
	Normalisers    QueryFieldWeights `yaml:"normalisers"`
	AverageWeights QueryFieldWeights `yaml:"averageWeights"`
	AverageScaling float64           `yaml:"averageScaling"`

	// Path enrichment
	ParentWeight float64 `yaml:"parentWeight"`
	PathWeight   float64 `yaml:"pathWeight"`

	// Output
	Thresholds              BranchThresholds `yaml:"thresholds"`
	OutputGoodScores        bool             `yaml:"outputGoodScores"`
	OutputMediumScores      bool             `yaml:"outputMediumScores"`
	OutputBadScores         bool             `yaml:"outputBadScores"`
	Branches                []string         `yaml:"branches"`
	MatchesTop              int              `yaml:"matchesTop"`
	Obsolete                bool             `yaml:"obsolete"`
	TopLevel                bool             `yaml:"topLevel"`
	ExistingAnnotations     bool             `yaml:"existingAnnotations"`
	InferiorParentsChildren bool             `yaml:"inferiorParentsChildren"`
	RemainingAnnotations    bool             `yaml:"remainingAnnotations"`
}

// ConceptIdfConfig toggles IDF weighting per concept field.
type ConceptIdfConfig struct {
	Label              bool `yaml:"label"`
	ExactSynonym       bool `yaml:"exactSynonym"`
	NarrowBroadSynonym bool `yaml:"narrowBroadSynonym"`
	Definition         bool `yaml:"definition"`
	Comment            bool `yaml:"comment"`
}

// QueryFieldWeights holds one weight per query field type.
type QueryFieldWeights struct {
	Name                float64 `yaml:"name"`
	Keyword             float64 `yaml:"keyword"`
	Description         float64 `yaml:"description"`
	Webpage             float64 `yaml:"webpage"`
	Doc                 float64 `yaml:"doc"`
	PublicationTitle    float64 `yaml:"publicationTitle"`
	PublicationKeyword  float64 `yaml:"publicationKeyword"`
	PublicationMesh     float64 `yaml:"publicationMesh"`
	PublicationEfo      float64 `yaml:"publicationEfo"`
	PublicationGo       float64 `yaml:"publicationGo"`
	PublicationAbstract float64 `yaml:"publicationAbstract"`
	PublicationFulltext float64 `yaml:"publicationFulltext"`
}

// Values returns the weights in query match type order (name, keyword,
// description, webpage, doc, publication title, keyword, MeSH, EFO, GO,
// abstract, fulltext).
func (w QueryFieldWeights) Values() []float64 {
	return []float64{
		w.Name, w.Keyword, w.Description, w.Webpage, w.Doc,
		w.PublicationTitle, w.PublicationKeyword, w.PublicationMesh,
		w.PublicationEfo, w.PublicationGo, w.PublicationAbstract, w.PublicationFulltext,
	}
}

// Threshold classifies final scores: at or above Good is good, at or above
// Bad is medium, anything lower is bad.
type Threshold struct {
	Good float64 `yaml:"good"`
	Bad  float64 `yaml:"bad"`
}

// BranchThresholds holds one Threshold per ontology branch.
type BranchThresholds struct {
	Topic     Threshold `yaml:"topic"`
	Operation Threshold `yaml:"operation"`
	Data      Threshold `yaml:"data"`
	Format    Threshold `yaml:"format"`
}

// For returns the threshold of the named branch.
func (t BranchThresholds) For(branch string) (Threshold, bool) {
	switch branch {
	case "topic":
		return t.Topic, true
	case "operation":
		return t.Operation, true
	case "data":
		return t.Data, true
	case "format":
		return t.Format, true
	default:
		return Threshold{}, false
	}
}

// ProcessorConfig controls how raw text is turned into tokens.
type ProcessorConfig struct {
	Stemming       bool `yaml:"stemming"`
	StopWords      bool `yaml:"stopWords"`
	MinTokenLength int  `yaml:"minTokenLength"`
}

// BatchConfig controls concurrent mapping of many queries.
type BatchConfig struct {
	Workers          int           `yaml:"workers"`
	QueryTimeout     time.Duration `yaml:"queryTimeout"`
	ProgressEvery    int           `yaml:"progressEvery"`
	FailOnQueryError bool          `yaml:"failOnQueryError"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values, and fails if the result does not validate.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.Newf(apperrors.ErrInvalidConfiguration, "parsing config file %s: %v", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Mapper.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config with the tuned defaults.
func Default() *Config {
	return &Config{
		Mapper: DefaultMapper(),
		Processor: ProcessorConfig{
			Stemming:       true,
			StopWords:      true,
			MinTokenLength: 1,
		},
		Batch: BatchConfig{
			Workers:       4,
			QueryTimeout:  time.Minute,
			ProgressEvery: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultMapper returns the default mapper knobs.
func DefaultMapper() MapperConfig {
	return MapperConfig{
		CompoundWords:        1,
		MismatchMultiplier:   2,
		MatchMinimum:         1,
		PositionOffBy1:       0.35,
		PositionOffBy2:       0.05,
		PositionMatchScaling: 0.5,
		PositionLoss:         0.4,
		ScoreScaling:         6,
		ConceptWeight:        1,
		QueryWeight:          1,

		LabelMultiplier:              1,
		ExactSynonymMultiplier:       1,
		NarrowBroadSynonymMultiplier: 1,
		DefinitionMultiplier:         0.7,
		CommentMultiplier:            0.7,

		ConceptIdf: ConceptIdfConfig{
			Definition: true,
			Comment:    true,
		},
		QueryIdf:   true,
		IdfScaling: 2,

		Strategy: StrategyBest,
		Normalisers: QueryFieldWeights{
			Name:                0.81,
			Keyword:             0.77,
			Description:         0.92,
			Webpage:             0.9,
			Doc:                 0.9,
			PublicationTitle:    0.91,
			PublicationKeyword:  0.77,
			PublicationMesh:     0.75,
			PublicationEfo:      0.57,
			PublicationGo:       0.59,
			PublicationAbstract: 0.91,
			PublicationFulltext: 0.86,
		},
		AverageWeights: QueryFieldWeights{
			Name:                1,
			Keyword:             1,
			Description:         1,
			Webpage:             1,
			Doc:                 1,
			PublicationTitle:    0.25,
			PublicationKeyword:  0.75,
			PublicationMesh:     0.25,
			PublicationEfo:      0.1,
			PublicationGo:       0.1,
			PublicationAbstract: 0.75,
			PublicationFulltext: 0.01,
		},
		AverageScaling: 1,

		ParentWeight: 0.5,
		PathWeight:   0.7,

		Thresholds: BranchThresholds{
			Topic:     Threshold{Good: 0.63, Bad: 0.57},
			Operation: Threshold{Good: 0.63, Bad: 0.57},
			Data:      Threshold{Good: 0.63, Bad: 0.57},
			Format:    Threshold{Good: 0.63, Bad: 0.57},
		},
		OutputGoodScores:   true,
		OutputMediumScores: true,
		OutputBadScores:    false,
		Branches:           []string{"topic", "operation"},
		MatchesTop:         5,

		ExistingAnnotations: true,
	}
}

// Validate checks value ranges. Branch names are resolved by the mapper.
func (m MapperConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperrors.Newf(apperrors.ErrInvalidConfiguration, format, args...)
	}
	if m.CompoundWords < 0 {
		return invalid("compoundWords must not be negative, got %d", m.CompoundWords)
	}
	if m.MismatchMultiplier <= 0 {
		return invalid("mismatchMultiplier must be positive, got %g", m.MismatchMultiplier)
	}
	if m.MatchMinimum < 0 || m.MatchMinimum > 1 {
		return invalid("matchMinimum must be in [0,1], got %g", m.MatchMinimum)
	}
	for name, v := range map[string]float64{
		"positionOffBy1":               m.PositionOffBy1,
		"positionOffBy2":               m.PositionOffBy2,
		"positionLoss":                 m.PositionLoss,
		"labelMultiplier":              m.LabelMultiplier,
		"exactSynonymMultiplier":       m.ExactSynonymMultiplier,
		"narrowBroadSynonymMultiplier": m.NarrowBroadSynonymMultiplier,
		"definitionMultiplier":         m.DefinitionMultiplier,
		"commentMultiplier":            m.CommentMultiplier,
		"parentWeight":                 m.ParentWeight,
	} {
		if v < 0 || v > 1 {
			return invalid("%s must be in [0,1], got %g", name, v)
		}
	}
	for name, v := range map[string]float64{
		"positionMatchScaling": m.PositionMatchScaling,
		"scoreScaling":         m.ScoreScaling,
		"conceptWeight":        m.ConceptWeight,
		"queryWeight":          m.QueryWeight,
		"idfScaling":           m.IdfScaling,
		"averageScaling":       m.AverageScaling,
		"pathWeight":           m.PathWeight,
	} {
		if v < 0 {
			return invalid("%s must not be negative, got %g", name, v)
		}
	}
	for _, v := range append(m.Normalisers.Values(), m.AverageWeights.Values()...) {
		if v < 0 {
			return invalid("query field weights must not be negative, got %g", v)
		}
	}
	if m.Strategy != StrategyBest && m.Strategy != StrategyAverage {
		return invalid("unknown strategy %q", m.Strategy)
	}
	if m.MatchesTop < 0 {
		return invalid("matchesTop must not be negative, got %d", m.MatchesTop)
	}
	if len(m.Branches) == 0 {
		return invalid("at least one branch is required")
	}
	return nil
}

// applyEnvOverrides reads EM_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EM_MAPPER_STRATEGY"); v != "" {
		cfg.Mapper.Strategy = v
	}
	if v := os.Getenv("EM_MAPPER_BRANCHES"); v != "" {
		cfg.Mapper.Branches = strings.Split(v, ",")
	}
	if v := os.Getenv("EM_MAPPER_MATCHES_TOP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Mapper.MatchesTop = n
		}
	}
	if v := os.Getenv("EM_MAPPER_PATH_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Mapper.PathWeight = f
		}
	}
	if v := os.Getenv("EM_BATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Batch.Workers = n
		}
	}
	if v := os.Getenv("EM_BATCH_QUERY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Batch.QueryTimeout = d
		}
	}
	if v := os.Getenv("EM_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("EM_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("EM_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Textfile = v
	}
}
