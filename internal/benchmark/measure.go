package benchmark

import (
	"encoding/json"
	"fmt"
)

// Test classifies a concept against the ground truth.
type Test int

const (
	TruePositive Test = iota
	FalsePositive
	FalseNegative
	testCount
)

var testInfo = [testCount]struct {
	name  string
	abbr  string
	label string
}{
	TruePositive:  {"true_positive", "TP", "True positives"},
	FalsePositive: {"false_positive", "FP", "False positives"},
	FalseNegative: {"false_negative", "FN", "False negatives"},
}

// Tests returns every Test in declaration order.
func Tests() []Test {
	return []Test{TruePositive, FalsePositive, FalseNegative}
}

func (t Test) String() string {
	if t < 0 || t >= testCount {
		return fmt.Sprintf("test(%d)", int(t))
	}
	return testInfo[t].name
}

func (t Test) Abbreviation() string {
	if t < 0 || t >= testCount {
		return t.String()
	}
	return testInfo[t].abbr
}

func (t Test) Label() string {
	if t < 0 || t >= testCount {
		return t.String()
	}
	return testInfo[t].label
}

func (t Test) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Measure is an information retrieval measure computed per branch.
type Measure int

const (
	Precision Measure = iota
	Recall
	F1
	F2
	Jaccard
	AveragePrecision
	RPrecision
	DCG
	DCGa
	measureCount
)

var measureInfo = [measureCount]struct {
	name  string
	abbr  string
	label string
}{
	Precision:        {"precision", "Pr", "Precision"},
	Recall:           {"recall", "Re", "Recall"},
	F1:               {"f1", "F1", "F1 score"},
	F2:               {"f2", "F2", "F2 score"},
	Jaccard:          {"jaccard", "Jac", "Jaccard index"},
	AveragePrecision: {"average_precision", "AveP", "Average precision"},
	RPrecision:       {"r_precision", "RP", "R-precision"},
	DCG:              {"dcg", "nDCG", "Discounted cumulative gain"},
	DCGa:             {"dcg_a", "nDCGa", "Discounted cumulative gain (exponential gain)"},
}

// Measures returns every Measure in declaration order.
func Measures() []Measure {
	out := make([]Measure, measureCount)
	for i := range out {
		out[i] = Measure(i)
	}
	return out
}

func (m Measure) String() string {
	if m < 0 || m >= measureCount {
		return fmt.Sprintf("measure(%d)", int(m))
	}
	return measureInfo[m].name
}

func (m Measure) Abbreviation() string {
	if m < 0 || m >= measureCount {
		return m.String()
	}
	return measureInfo[m].abbr
}

func (m Measure) Label() string {
	if m < 0 || m >= measureCount {
		return m.String()
	}
	return measureInfo[m].label
}

func (m Measure) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Counts holds one count per Test.
type Counts [testCount]int

func (c Counts) Get(t Test) int {
	return c[t]
}

func (c *Counts) add(o Counts) {
	for i := range c {
		c[i] += o[i]
	}
}

func (c Counts) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, testCount)
	for _, t := range Tests() {
		out[t.String()] = c[t]
	}
	return json.Marshal(out)
}

// Values holds one value per Measure.
type Values [measureCount]float64

func (v Values) Get(m Measure) float64 {
	return v[m]
}

func (v Values) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, measureCount)
	for _, m := range Measures() {
		out[m.String()] = v[m]
	}
	return json.Marshal(out)
}
