package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/batch"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/benchmark"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/mapper"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/processor"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/query"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/edammap/pkg/metrics"
)

func main() {
	app := &cli.App{
		Name:  "edammap",
		Usage: "Suggest EDAM ontology annotations for tool descriptions and benchmark them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file (defaults apply when empty)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "map",
				Usage:  "Map every query of an input bundle and benchmark against existing annotations",
				Action: runMap,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "JSON bundle with concepts, idf and queries (- for stdin)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write mappings as JSON lines to this file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "metrics-file",
						Usage: "Write Prometheus metrics in textfile format (overrides config)",
					},
				},
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration as YAML",
				Action: runConfig,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "edammap: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func runConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func runMap(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if path := c.String("metrics-file"); path != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Textfile = path
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	in, err := loadBundle(c.String("input"))
	if err != nil {
		return err
	}
	slog.Info("input loaded", "input", c.String("input"), "contents", in.String())

	proc := processor.New(cfg.Processor, in.IDF)
	concepts := proc.Concepts(in.Concepts, cfg.Mapper)
	queries := make([]*query.QueryProcessed, len(in.Queries))
	for i, q := range in.Queries {
		queries[i] = proc.Query(q)
	}

	reg := prometheus.NewRegistry()
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		if m, err = metrics.New(reg); err != nil {
			return err
		}
	}

	runner, err := batch.NewRunner(concepts, cfg.Mapper, cfg.Batch, m)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(c.String("output"), c.App.Writer)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	report, runErr := runner.Run(ctx, queries)

	if report != nil {
		if err := writeResults(out, report); err != nil {
			_ = closeOut()
			return err
		}
		logSummary(report.Benchmark)
	}
	if err := closeOut(); err != nil {
		return err
	}

	if m != nil && cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			slog.Error("failed to write metrics", "error", err)
		}
	}
	return runErr
}

// openOutput creates the output file up front so a bad path fails before the
// batch runs. An empty path writes to stdout, which is never closed.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, apperrors.Newf(apperrors.ErrInvalidInput, "creating output %s: %v", path, err)
	}
	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing output %s: %w", path, err)
		}
		return nil
	}, nil
}

type record struct {
	Query     string                 `json:"query"`
	Mapping   *mapper.Mapping        `json:"mapping,omitempty"`
	Benchmark *benchmark.QueryResult `json:"benchmark,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func writeResults(w io.Writer, report *batch.Report) error {
	enc := json.NewEncoder(w)
	for _, res := range report.Results {
		rec := record{Query: res.QueryID}
		if res.Err != nil {
			rec.Error = res.Err.Error()
		} else {
			rec.Mapping = res.Mapping
			rec.Benchmark = &res.Benchmark
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("writing result of %s: %w", res.QueryID, err)
		}
	}
	return nil
}

func logSummary(res benchmark.Results) {
	args := []any{
		"queries", res.Queries,
		"with_ground_truth", res.QueriesWithTruth,
	}
	for _, t := range benchmark.Tests() {
		args = append(args, t.Abbreviation(), res.Counts.Get(t))
	}
	for _, m := range benchmark.Measures() {
		args = append(args, m.Abbreviation(), fmt.Sprintf("%.4f", res.Measures.Get(m)))
	}
	slog.Info("benchmark summary", args...)
}
