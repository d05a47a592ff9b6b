package processor

// IDF maps a processed token to its inverse document frequency, normalised
// to [0,1]. Tokens absent from the table are treated as maximally rare.
type IDF map[string]float64

func (idf IDF) Lookup(token string) float64 {
	if v, ok := idf[token]; ok {
		return v
	}
	return 1
}

// Weights returns the IDF vector of ts, or nil without a table.
func (idf IDF) Weights(ts []string) []float64 {
	if idf == nil || len(ts) == 0 {
		return nil
	}
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = idf.Lookup(t)
	}
	return out
}
