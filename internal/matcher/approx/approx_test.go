package approx

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandard(t *testing.T) {
	assert.Equal(t, 3, Standard("kitten", "sitting"))
	assert.Equal(t, 0, Standard("", ""))
	assert.Equal(t, 4, Standard("", "gene"))
	assert.Equal(t, 1, Standard("protein", "proteins"))
}

func TestImprovedBound(t *testing.T) {
	m := New()
	assert.Equal(t, NoMatch, m.Improved("kitten", "sitting", 2))
	assert.Equal(t, 3, m.Improved("kitten", "sitting", 3))
	assert.Equal(t, 3, m.Improved("sitting", "kitten", 10))
	assert.Equal(t, NoMatch, m.Improved("a", "abcd", 2), "length difference alone exceeds bound")
	assert.Equal(t, 3, m.Improved("", "abc", 3))
	assert.Equal(t, NoMatch, m.Improved("abc", "abc", -1))
}

func TestImprovedZeroBoundIsEquality(t *testing.T) {
	m := New()
	pairs := [][2]string{{"gene", "gene"}, {"gene", "genes"}, {"", ""}, {"a", "b"}}
	for _, p := range pairs {
		got := m.Improved(p[0], p[1], 0)
		if p[0] == p[1] {
			assert.Equal(t, 0, got, p)
		} else {
			assert.Equal(t, NoMatch, got, p)
		}
	}
}

func TestImprovedAgreesWithStandard(t *testing.T) {
	m := New()
	rng := rand.New(rand.NewSource(7))
	word := func() string {
		n := rng.Intn(9)
		b := make([]byte, n)
		for i := range b {
			b[i] = "acgt"[rng.Intn(4)]
		}
		return string(b)
	}
	for i := 0; i < 5000; i++ {
		a, b := word(), word()
		pMax := rng.Intn(10)
		want := Standard(a, b)
		if want > pMax {
			want = NoMatch
		}
		assert.Equal(t, want, m.Improved(a, b, pMax), "a=%q b=%q pMax=%d", a, b, pMax)
	}
}

func TestImprovedCacheOnlyGrows(t *testing.T) {
	m := New()
	m.Improved("alignment", "alignments", 8)
	capacity := len(m.fkp)
	m.Improved("ab", "ba", 2)
	assert.Equal(t, capacity, len(m.fkp))
	assert.Equal(t, 1, m.Improved("alignment", "alignmant", 4))

	m.Improved("phylogenetics", "phylogenomics", 12)
	assert.Greater(t, len(m.fkp), capacity)
}

func TestImprovedUnicode(t *testing.T) {
	m := New()
	assert.Equal(t, 1, m.Improved("naïve", "naive", 1))
}

func BenchmarkImproved(b *testing.B) {
	m := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Improved("bioinformatics", "bioinformatic", 3)
	}
}
