package ops

import (
	"fmt"

	"github.com/segcut/gridcut/matrix"
)

// Determinant computes det(m) for a square matrix via Doolittle LU
// decomposition: det(m) = product of U's diagonal (L's diagonal is unity).
// Returns matrix.ErrMatrixDimensionMismatch if m is not square.
// Complexity: O(n^3) time, O(n^2) memory (dominated by LU).
func Determinant(m matrix.Matrix) (float64, error) {
	if m.Rows() != m.Cols() {
		return 0, fmt.Errorf("Determinant: non-square %dx%d: %w", m.Rows(), m.Cols(), matrix.ErrMatrixDimensionMismatch)
	}

	_, U, err := LU(m)
	if err != nil {
		return 0, fmt.Errorf("Determinant: %w", err)
	}

	det := 1.0
	for i := 0; i < U.Rows(); i++ {
		v, _ := U.At(i, i)
		det *= v
	}

	return det, nil
}
