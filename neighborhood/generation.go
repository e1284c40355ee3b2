package neighborhood

import (
	"fmt"
	"sort"
)

// spec pairs each symbol with its rank, target direction count, and a
// generation box radius generous enough to contain that many shortest
// primitive integer vectors.
type spec struct {
	rank   int
	count  int
	radius int
}

var symbolSpecs = map[string]spec{
	"N4":  {rank: 2, count: 4, radius: 1},
	"N8":  {rank: 2, count: 8, radius: 1},
	"N16": {rank: 2, count: 16, radius: 2},
	"N32": {rank: 2, count: 32, radius: 4},
	"N6":  {rank: 3, count: 6, radius: 1},
	"N18": {rank: 3, count: 18, radius: 1},
	"N26": {rank: 3, count: 26, radius: 1},
	"N98": {rank: 3, count: 98, radius: 2},
}

// generateOffsets returns the count shortest primitive integer displacement
// vectors for the given rank, ordered so that index i and i^1 are negations
// of each other, and sorted overall by ascending Euclidean length with a
// lexicographic tie-break for determinism.
//
// Stage 1 (Candidates): enumerate every non-zero integer vector within a
// [-radius, radius]^rank box.
// Stage 2 (Primitive filter): discard any vector whose components share a
// common factor > 1 — these are collinear duplicates of a shorter vector
// already in the box (e.g. (2,0) duplicates (1,0)).
// Stage 3 (Pairing): group each vector with its negation, keep one
// canonical representative per pair, sort representatives by length, take
// the shortest count/2, and emit [rep, -rep] for each in order.
//
// Complexity: O(radius^rank log(radius^rank)).
func generateOffsets(rank, count, radius int) ([][]int, error) {
	candidates := enumerateBox(rank, radius)

	primitive := make([][]int, 0, len(candidates))
	for _, v := range candidates {
		if isPrimitive(v) {
			primitive = append(primitive, v)
		}
	}

	reps := canonicalRepresentatives(primitive)
	sort.Slice(reps, func(i, j int) bool {
		return lessByLengthThenLex(reps[i], reps[j])
	})

	need := count / 2
	if len(reps) < need {
		return nil, fmt.Errorf("neighborhood: radius %d yields %d pairs, need %d", radius, len(reps), need)
	}

	out := make([][]int, 0, count)
	for _, rep := range reps[:need] {
		out = append(out, rep, negate(rep))
	}

	return out, nil
}

// enumerateBox lists every non-zero integer vector of the given rank with
// each component in [-radius, radius].
func enumerateBox(rank, radius int) [][]int {
	var out [][]int
	cur := make([]int, rank)

	var rec func(axis int)
	rec = func(axis int) {
		if axis == rank {
			v := make([]int, rank)
			copy(v, cur)
			if !isZero(v) {
				out = append(out, v)
			}

			return
		}
		for c := -radius; c <= radius; c++ {
			cur[axis] = c
			rec(axis + 1)
		}
	}
	rec(0)

	return out
}

func isZero(v []int) bool {
	for _, c := range v {
		if c != 0 {
			return false
		}
	}

	return true
}

// isPrimitive reports whether gcd of the absolute components is 1, i.e.
// v is not an integer multiple of a shorter vector in the same direction.
func isPrimitive(v []int) bool {
	g := 0
	for _, c := range v {
		g = gcd(g, abs(c))
	}

	return g == 1
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func abs(a int) int {
	if a < 0 {
		return -a
	}

	return a
}

func negate(v []int) []int {
	out := make([]int, len(v))
	for i, c := range v {
		out[i] = -c
	}

	return out
}

// canonicalRepresentatives picks one vector per ± pair: the one whose
// first non-zero component is positive.
func canonicalRepresentatives(vs [][]int) [][]int {
	out := make([][]int, 0, len(vs)/2+1)
	for _, v := range vs {
		if isCanonical(v) {
			out = append(out, v)
		}
	}

	return out
}

func isCanonical(v []int) bool {
	for _, c := range v {
		if c != 0 {
			return c > 0
		}
	}

	return false
}

func lessByLengthThenLex(a, b []int) bool {
	la, lb := sqLen(a), sqLen(b)
	if la != lb {
		return la < lb
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

func sqLen(v []int) int {
	s := 0
	for _, c := range v {
		s += c * c
	}

	return s
}
