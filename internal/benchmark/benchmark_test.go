package benchmark

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/mapper"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
)

var (
	a = ontology.MustParseEdamUri("topic_0091")
	b = ontology.MustParseEdamUri("topic_0080")
	c = ontology.MustParseEdamUri("topic_0160")
	d = ontology.MustParseEdamUri("topic_0182")
	x = ontology.MustParseEdamUri("operation_0292")
)

func mapping(t *testing.T, top int, branches []ontology.Branch, ranked ...ontology.EdamUri) *mapper.Mapping {
	t.Helper()
	m, err := mapper.NewMapping("q", top, branches)
	require.NoError(t, err)
	for _, u := range ranked {
		require.True(t, m.Add(mapper.Match{Uri: u}))
	}
	return m
}

var topicOnly = []ontology.Branch{ontology.Topic}

func TestSetMeasures(t *testing.T) {
	res := Evaluate([]ontology.EdamUri{a, b}, mapping(t, 5, topicOnly, a, c))

	assert.True(t, res.HasGroundTruth)
	assert.Equal(t, 1, res.Counts.Get(TruePositive))
	assert.Equal(t, 1, res.Counts.Get(FalsePositive))
	assert.Equal(t, 1, res.Counts.Get(FalseNegative))
	assert.InDelta(t, 0.5, res.Measures.Get(Precision), 1e-12)
	assert.InDelta(t, 0.5, res.Measures.Get(Recall), 1e-12)
	assert.InDelta(t, 0.5, res.Measures.Get(F1), 1e-12)
	assert.InDelta(t, 0.5, res.Measures.Get(F2), 1e-12)
	assert.InDelta(t, 1.0/3, res.Measures.Get(Jaccard), 1e-12)
	assert.InDelta(t, 0.5, res.Measures.Get(AveragePrecision), 1e-12)
	assert.InDelta(t, 0.5, res.Measures.Get(RPrecision), 1e-12)
	assert.InDelta(t, 0.5, res.Measures.Get(DCG), 1e-12)
	assert.InDelta(t, 1/(1+1/math.Log2(3)), res.Measures.Get(DCGa), 1e-12)

	require.Len(t, res.Branches, 1)
	assert.Equal(t, []Judgement{
		{Uri: a, Test: TruePositive},
		{Uri: c, Test: FalsePositive},
		{Uri: b, Test: FalseNegative},
	}, res.Branches[0].Judgements)
}

func TestSingleRelevantFirstIsIdeal(t *testing.T) {
	res := Evaluate([]ontology.EdamUri{a}, mapping(t, 5, topicOnly, a, c, d))
	assert.Equal(t, 1.0, res.Measures.Get(DCG))
	assert.Equal(t, 1.0, res.Measures.Get(DCGa))
	assert.Equal(t, 1.0, res.Measures.Get(AveragePrecision))
	assert.Equal(t, 1.0, res.Measures.Get(RPrecision))
}

func TestIdealRankingBoundedByCapacity(t *testing.T) {
	// Three relevant concepts but room for one: a relevant first rank is
	// already the best possible list.
	res := Evaluate([]ontology.EdamUri{a, b, d}, mapping(t, 1, topicOnly, a))
	assert.Equal(t, 1.0, res.Measures.Get(DCG))
	assert.Equal(t, 1.0, res.Measures.Get(DCGa))
	assert.InDelta(t, 1.0/3, res.Measures.Get(Recall), 1e-12)
}

func TestLinearAndExponentialDCGDiffer(t *testing.T) {
	res := Evaluate([]ontology.EdamUri{a, b}, mapping(t, 5, topicOnly, c, a, b))
	// Linear: ranks 2 and 3 give 1 + 1/log2(3); ideal 2.
	assert.InDelta(t, (1+1/math.Log2(3))/2, res.Measures.Get(DCG), 1e-12)
	// Exponential: 1/log2(3) + 1/log2(4); ideal 1 + 1/log2(3).
	assert.InDelta(t, (1/math.Log2(3)+0.5)/(1+1/math.Log2(3)), res.Measures.Get(DCGa), 1e-12)
	assert.InDelta(t, (0.5+2.0/3)/2, res.Measures.Get(AveragePrecision), 1e-12)
	assert.InDelta(t, 0.5, res.Measures.Get(RPrecision), 1e-12)
}

func TestZeroDivisionGuards(t *testing.T) {
	res := Evaluate([]ontology.EdamUri{a}, mapping(t, 5, topicOnly))
	assert.Equal(t, 1, res.Counts.Get(FalseNegative))
	for _, m := range Measures() {
		v := res.Measures.Get(m)
		assert.False(t, math.IsNaN(v), m.String())
		assert.Equal(t, 0.0, v, m.String())
	}
}

func TestBranchesWithoutTruthAreSkipped(t *testing.T) {
	branches := []ontology.Branch{ontology.Topic, ontology.Operation}
	res := Evaluate([]ontology.EdamUri{a}, mapping(t, 5, branches, a, x))

	require.Len(t, res.Branches, 2)
	assert.True(t, res.Branches[0].HasGroundTruth)
	assert.False(t, res.Branches[1].HasGroundTruth)
	assert.Equal(t, 1, res.Counts.Get(FalsePositive))
	// Operation has no ground truth, so the query measures are topic's.
	assert.Equal(t, 1.0, res.Measures.Get(Precision))
}

func TestGroundTruthOutsideMappedBranchesIgnored(t *testing.T) {
	res := Evaluate([]ontology.EdamUri{x}, mapping(t, 5, topicOnly, a))
	assert.False(t, res.HasGroundTruth)
	assert.Equal(t, 0, res.Counts.Get(FalseNegative))
}

func TestAggregate(t *testing.T) {
	first := Evaluate([]ontology.EdamUri{a, b}, mapping(t, 5, topicOnly, a, c))
	second := Evaluate([]ontology.EdamUri{a}, mapping(t, 5, topicOnly, a))
	none := Evaluate(nil, mapping(t, 5, topicOnly, d))

	res := Aggregate([]QueryResult{first, second, none})
	assert.Equal(t, 3, res.Queries)
	assert.Equal(t, 2, res.QueriesWithTruth)
	assert.Equal(t, 2, res.Counts.Get(TruePositive))
	assert.Equal(t, 2, res.Counts.Get(FalsePositive))
	assert.Equal(t, 1, res.Counts.Get(FalseNegative))
	assert.InDelta(t, 0.75, res.Measures.Get(Precision), 1e-12)

	topic := res.Branches[ontology.Topic]
	require.NotNil(t, topic)
	assert.Equal(t, 2, topic.QueriesWithTruth)
	assert.InDelta(t, 0.75, topic.Measures.Get(Recall), 1e-12)
}

func TestAggregateEmpty(t *testing.T) {
	res := Aggregate(nil)
	assert.Equal(t, 0, res.Queries)
	assert.Equal(t, Values{}, res.Measures)
}

func TestMetadata(t *testing.T) {
	assert.Equal(t, "TP", TruePositive.Abbreviation())
	assert.Equal(t, "false_negative", FalseNegative.String())
	assert.Len(t, Measures(), 9)
	assert.Equal(t, "nDCGa", DCGa.Abbreviation())
	assert.Equal(t, "measure(42)", Measure(42).String())

	data, err := json.Marshal(Evaluate([]ontology.EdamUri{a}, mapping(t, 5, topicOnly, a)))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"precision":1`)
	assert.Contains(t, string(data), `"true_positive":1`)
	assert.Contains(t, string(data), `"test":"true_positive"`)
}
