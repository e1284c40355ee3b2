// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All algorithms return these sentinels; callers check them via errors.Is.
package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates a row or column index outside valid bounds.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrMatrixDimensionMismatch indicates incompatible dimensions between operands.
	ErrMatrixDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates a nil Matrix was used where a value was required.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
