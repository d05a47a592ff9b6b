package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.QueriesTotal.WithLabelValues(StatusOK).Add(2)
	m.MatchesTotal.WithLabelValues("topic", "good").Inc()
	m.BenchmarkMeasure.WithLabelValues(AllBranches, "precision").Set(0.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(StatusOK)))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.BenchmarkMeasure.WithLabelValues(AllBranches, "precision")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.MatchesTotal))
}

func TestNewFailsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	m.ConceptsLoaded.Set(42)

	path := filepath.Join(t.TempDir(), "edammap.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "edammap_concepts_loaded 42")
}

func TestWriteTextfileBadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), prometheus.NewRegistry())
	assert.Error(t, err)
}
