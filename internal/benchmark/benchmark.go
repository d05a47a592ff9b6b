// Package benchmark scores mappings against ground-truth annotations with
// set and rank based retrieval measures.
package benchmark

import (
	"math"

	"github.com/Adithya-Monish-Kumar-K/edammap/internal/mapper"
	"github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"
)

// Judgement is the test outcome of one concept.
type Judgement struct {
	Uri  ontology.EdamUri `json:"uri"`
	Test Test             `json:"test"`
}

// BranchResult holds the outcome for one branch of one query. Measures are
// only computed when the branch has ground truth.
type BranchResult struct {
	Branch         ontology.Branch `json:"branch"`
	HasGroundTruth bool            `json:"hasGroundTruth"`
	Counts         Counts          `json:"counts"`
	Measures       Values          `json:"measures"`
	// Judgements lists ranked matches in rank order followed by the missed
	// ground-truth concepts.
	Judgements []Judgement `json:"judgements,omitempty"`
}

// QueryResult aggregates the branches of one query: counts are summed and
// measures averaged over the branches with ground truth.
type QueryResult struct {
	QueryID        string         `json:"query"`
	HasGroundTruth bool           `json:"hasGroundTruth"`
	Counts         Counts         `json:"counts"`
	Measures       Values         `json:"measures"`
	Branches       []BranchResult `json:"branches"`
}

// Evaluate compares a mapping with the query's ground truth. Ground truth in
// branches the mapping does not cover is ignored.
func Evaluate(groundTruth []ontology.EdamUri, mapping *mapper.Mapping) QueryResult {
	res := QueryResult{QueryID: mapping.QueryID()}
	truth := make(map[ontology.Branch]map[ontology.EdamUri]struct{})
	var truthOrder []ontology.EdamUri
	for _, u := range groundTruth {
		if truth[u.Branch] == nil {
			truth[u.Branch] = make(map[ontology.EdamUri]struct{})
		}
		if _, dup := truth[u.Branch][u]; dup {
			continue
		}
		truth[u.Branch][u] = struct{}{}
		truthOrder = append(truthOrder, u)
	}
	ontology.SortUris(truthOrder)

	n := 0
	for _, b := range mapping.Branches() {
		br := evaluateBranch(b, truth[b], truthOrder, mapping.Matches(b), mapping.Capacity())
		res.Counts.add(br.Counts)
		if br.HasGroundTruth {
			res.HasGroundTruth = true
			for i := range res.Measures {
				res.Measures[i] += br.Measures[i]
			}
			n++
		}
		res.Branches = append(res.Branches, br)
	}
	if n > 0 {
		for i := range res.Measures {
			res.Measures[i] /= float64(n)
		}
	}
	return res
}

func evaluateBranch(b ontology.Branch, truth map[ontology.EdamUri]struct{}, truthOrder []ontology.EdamUri, matches []mapper.Match, capacity int) BranchResult {
	res := BranchResult{Branch: b, HasGroundTruth: len(truth) > 0}
	relevant := make([]bool, len(matches))
	ranked := make(map[ontology.EdamUri]struct{}, len(matches))
	for i, m := range matches {
		ranked[m.Uri] = struct{}{}
		test := FalsePositive
		if _, ok := truth[m.Uri]; ok {
			test = TruePositive
			relevant[i] = true
		}
		res.Counts[test]++
		res.Judgements = append(res.Judgements, Judgement{Uri: m.Uri, Test: test})
	}
	for _, u := range truthOrder {
		if u.Branch != b {
			continue
		}
		if _, ok := ranked[u]; !ok {
			res.Counts[FalseNegative]++
			res.Judgements = append(res.Judgements, Judgement{Uri: u, Test: FalseNegative})
		}
	}
	if res.HasGroundTruth {
		res.Measures = measures(res.Counts, relevant, len(truth), capacity)
	}
	return res
}

// measures computes every Measure. relevant is the ranked list's relevance;
// total is the ground-truth size; capacity bounds the ideal ranking.
func measures(c Counts, relevant []bool, total, capacity int) Values {
	var v Values
	tp := float64(c[TruePositive])
	fp := float64(c[FalsePositive])
	fn := float64(c[FalseNegative])

	if tp+fp > 0 {
		v[Precision] = tp / (tp + fp)
	}
	if tp+fn > 0 {
		v[Recall] = tp / (tp + fn)
	}
	p, r := v[Precision], v[Recall]
	if p+r > 0 {
		v[F1] = 2 * p * r / (p + r)
	}
	if 4*p+r > 0 {
		v[F2] = 5 * p * r / (4*p + r)
	}
	if tp+fp+fn > 0 {
		v[Jaccard] = tp / (tp + fp + fn)
	}

	if total > 0 {
		hits, sumPrecision, inR := 0, 0.0, 0
		for i, rel := range relevant {
			if !rel {
				continue
			}
			hits++
			sumPrecision += float64(hits) / float64(i+1)
			if i < total {
				inR++
			}
		}
		v[AveragePrecision] = sumPrecision / float64(total)
		v[RPrecision] = float64(inR) / float64(total)
	}

	ideal := make([]bool, min(total, capacity))
	for i := range ideal {
		ideal[i] = true
	}
	if d := dcg(ideal); d > 0 {
		v[DCG] = dcg(relevant) / d
	}
	if d := dcgExponential(ideal); d > 0 {
		v[DCGa] = dcgExponential(relevant) / d
	}
	return v
}

// dcg uses linear gain with the log2(rank) discount from rank 2 on, so the
// first two ranks weigh the same.
func dcg(relevant []bool) float64 {
	sum := 0.0
	for i, rel := range relevant {
		if !rel {
			continue
		}
		rank := i + 1
		if rank == 1 {
			sum++
			continue
		}
		sum += 1 / math.Log2(float64(rank))
	}
	return sum
}

// dcgExponential uses 2^rel-1 gain with the log2(rank+1) discount.
// Relevance is binary here.
func dcgExponential(relevant []bool) float64 {
	sum := 0.0
	for i, rel := range relevant {
		if !rel {
			continue
		}
		gain := math.Exp2(1) - 1
		sum += gain / math.Log2(float64(i+2))
	}
	return sum
}
