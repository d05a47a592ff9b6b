// Package approx computes edit distances between tokens. Standard is the
// plain Levenshtein distance; Matcher.Improved is a banded variant that stops
// as soon as the distance is known to exceed a bound.
package approx

import (
	"math"

	"github.com/hbollon/go-edlib"
)

// NoMatch is returned by Improved when the distance exceeds the bound.
const NoMatch = -1

const unreachable = math.MinInt32

// Standard returns the Levenshtein distance between a and b with unit costs.
func Standard(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Matcher holds the diagonal cache used by Improved. The cache only grows.
// A Matcher must not be used from several goroutines at once.
type Matcher struct {
	fkp    []int
	capP   int
	cols   int
	offset int
}

func New() *Matcher {
	return &Matcher{capP: -1}
}

// Improved returns the edit distance between a and b if it is at most pMax,
// and NoMatch otherwise. With pMax 0 it is an equality test.
//
// The cache entry for diagonal k and edit count p holds the furthest row of
// the shorter string reachable on diagonal k with at most p edits.
func (m *Matcher) Improved(a, b string, pMax int) int {
	if pMax < 0 {
		return NoMatch
	}
	if a == b {
		return 0
	}
	if pMax == 0 {
		return NoMatch
	}
	s, t := []rune(a), []rune(b)
	if len(s) > len(t) {
		s, t = t, s
	}
	ls, lt := len(s), len(t)
	target := lt - ls
	if target > pMax {
		return NoMatch
	}
	if ls == 0 {
		return target
	}
	if pMax > lt {
		pMax = lt
	}
	m.grow(pMax)

	m.fill(-1, 1)
	m.set(0, -1, -1)
	for p := 0; p <= pMax; p++ {
		m.fill(p, p+2)
		kLo, kHi := -p, p
		if kLo < -ls {
			kLo = -ls
		}
		if kHi > lt {
			kHi = lt
		}
		for k := kLo; k <= kHi; k++ {
			row := max(m.at(k, p-1)+1, m.at(k-1, p-1), m.at(k+1, p-1)+1)
			if row < 0 || row+k < 0 {
				continue
			}
			row = min(row, ls, lt-k)
			for row < ls && row+k < lt && s[row] == t[row+k] {
				row++
			}
			m.set(k, p, row)
		}
		if p >= target && m.at(target, p) >= ls {
			return p
		}
	}
	return NoMatch
}

func (m *Matcher) grow(pMax int) {
	if pMax <= m.capP {
		return
	}
	m.capP = pMax
	m.offset = pMax + 2
	m.cols = pMax + 2
	m.fkp = make([]int, (2*m.offset+1)*m.cols)
}

// fill marks diagonals -width..width of column p as unreachable.
func (m *Matcher) fill(p, width int) {
	for k := -width; k <= width; k++ {
		m.set(k, p, unreachable)
	}
}

func (m *Matcher) at(k, p int) int {
	return m.fkp[(k+m.offset)*m.cols+p+1]
}

func (m *Matcher) set(k, p, v int) {
	m.fkp[(k+m.offset)*m.cols+p+1] = v
}
