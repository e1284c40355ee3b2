package neighborhood

import "math"

// Lookup resolves a neighbourhood symbol to its isotropic System. Valid
// symbols are "N4","N8","N16","N32" (2-D) and "N6","N18","N26","N98"
// (3-D); any other symbol returns ErrUnsupportedNeighbourhood.
// Complexity: O(k log k), k = direction count for the symbol.
func Lookup(symbol string) (*System, error) {
	sp, ok := symbolSpecs[symbol]
	if !ok {
		return nil, ErrUnsupportedNeighbourhood
	}

	deltas, err := generateOffsets(sp.rank, sp.count, sp.radius)
	if err != nil {
		return nil, err
	}

	dirs := make([][]float64, len(deltas))
	rho := make([]float64, len(deltas))
	offsets := make([]Offset, len(deltas))
	for i, d := range deltas {
		r := euclidLen(d)
		rho[i] = r
		dirs[i] = normalize(d, r)
		offsets[i] = Offset{Delta: d}
	}

	assignWeights(sp.rank, dirs, rho, offsets)

	return &System{Symbol: symbol, Rank: sp.rank, Offsets: offsets}, nil
}

func euclidLen(v []int) float64 {
	s := 0.0
	for _, c := range v {
		s += float64(c) * float64(c)
	}

	return math.Sqrt(s)
}

func normalize(v []int, rho float64) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = float64(c) / rho
	}

	return out
}
