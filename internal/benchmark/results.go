package benchmark

import "github.com/Adithya-Monish-Kumar-K/edammap/internal/ontology"

// Summary is the aggregate over queries: counts are summed, measures are the
// mean of the per-query values over queries with ground truth.
type Summary struct {
	Queries          int    `json:"queries"`
	QueriesWithTruth int    `json:"queriesWithTruth"`
	Counts           Counts `json:"counts"`
	Measures         Values `json:"measures"`
}

// Results is the benchmark of a whole batch.
type Results struct {
	Summary
	Branches map[ontology.Branch]*Summary `json:"branches"`
}

// Aggregate combines per-query results. Branch summaries average over the
// queries having ground truth in that branch.
func Aggregate(results []QueryResult) Results {
	out := Results{Branches: make(map[ontology.Branch]*Summary)}
	for _, r := range results {
		out.add(r.Counts, r.Measures, r.HasGroundTruth)
		for _, br := range r.Branches {
			s, ok := out.Branches[br.Branch]
			if !ok {
				s = &Summary{}
				out.Branches[br.Branch] = s
			}
			s.add(br.Counts, br.Measures, br.HasGroundTruth)
		}
	}
	out.finish()
	for _, s := range out.Branches {
		s.finish()
	}
	return out
}

func (s *Summary) add(c Counts, v Values, hasTruth bool) {
	s.Queries++
	s.Counts.add(c)
	if !hasTruth {
		return
	}
	s.QueriesWithTruth++
	for i := range s.Measures {
		s.Measures[i] += v[i]
	}
}

func (s *Summary) finish() {
	if s.QueriesWithTruth == 0 {
		return
	}
	for i := range s.Measures {
		s.Measures[i] /= float64(s.QueriesWithTruth)
	}
}
