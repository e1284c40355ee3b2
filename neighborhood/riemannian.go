package neighborhood

import (
	"fmt"
	"math"

	"github.com/segcut/gridcut/matrix"
	"github.com/segcut/gridcut/matrix/ops"
)

// eigenTolerance and eigenMaxIter bound the Jacobi sweep used to validate
// a Riemannian metric transform's positive-definiteness.
const (
	eigenTolerance = 1e-9
	eigenMaxIter   = 100
)

// LookupAnisotropic resolves symbol exactly as Lookup does, then reweights
// every direction under the Riemannian metric transform m: each
// displacement d_i is replaced by m·d_i for both the Voronoi computation
// (on the normalized m·d̂_i) and the length ρ_i, and every weight is scaled
// by det(m) per spec.md §4.1.
//
// m must be square with Rows() == the neighbourhood's rank and symmetric
// positive definite (every eigenvalue > 0); otherwise ErrMetricDimMismatch
// or ErrMetricNotSPD is returned.
// Complexity: O(k log k + n^3), n = rank (SPD check dominates for rank 3).
func LookupAnisotropic(symbol string, m matrix.Matrix) (*System, error) {
	sp, ok := symbolSpecs[symbol]
	if !ok {
		return nil, ErrUnsupportedNeighbourhood
	}
	if m.Rows() != m.Cols() {
		return nil, ErrMetricNotSquare
	}
	if m.Rows() != sp.rank {
		return nil, fmt.Errorf("neighborhood: metric is %dx%d, rank is %d: %w", m.Rows(), m.Cols(), sp.rank, ErrMetricDimMismatch)
	}

	det, err := validateSPD(m)
	if err != nil {
		return nil, err
	}

	deltas, err := generateOffsets(sp.rank, sp.count, sp.radius)
	if err != nil {
		return nil, err
	}

	dirs := make([][]float64, len(deltas))
	rho := make([]float64, len(deltas))
	offsets := make([]Offset, len(deltas))
	for i, d := range deltas {
		fd := make([]float64, len(d))
		for j, c := range d {
			fd[j] = float64(c)
		}

		md, err := mulVector(m, fd)
		if err != nil {
			return nil, err
		}

		r := euclidLenF(md)
		rho[i] = r
		dirs[i] = normalizeF(md, r)
		offsets[i] = Offset{Delta: d}
	}

	assignWeights(sp.rank, dirs, rho, offsets)
	for i := range offsets {
		offsets[i].Weight *= det
	}

	return &System{Symbol: symbol, Rank: sp.rank, Offsets: offsets}, nil
}

// mulVector multiplies m by v, using the fast Dense.MulVector path when
// available and falling back to the generic Matrix interface otherwise.
func mulVector(m matrix.Matrix, v []float64) ([]float64, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d.MulVector(v)
	}

	out := make([]float64, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		var sum float64
		for j := 0; j < m.Cols(); j++ {
			e, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			sum += e * v[j]
		}
		out[i] = sum
	}

	return out, nil
}

// validateSPD checks that m is symmetric with strictly positive
// eigenvalues and returns det(m). Returns ErrMetricNotSPD if either check
// fails.
func validateSPD(m matrix.Matrix) (float64, error) {
	eigenvalues, _, err := ops.Eigen(m, eigenTolerance, eigenMaxIter)
	if err != nil {
		return 0, fmt.Errorf("neighborhood: %w: %w", err, ErrMetricNotSPD)
	}
	for _, lambda := range eigenvalues {
		if lambda <= 0 {
			return 0, ErrMetricNotSPD
		}
	}

	det, err := ops.Determinant(m)
	if err != nil {
		return 0, err
	}

	return det, nil
}

func euclidLenF(v []float64) float64 {
	s := 0.0
	for _, c := range v {
		s += c * c
	}

	return math.Sqrt(s)
}

func normalizeF(v []float64, rho float64) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = c / rho
	}

	return out
}
