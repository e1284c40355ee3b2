package neighborhood

import "errors"

// Sentinel errors for neighbourhood construction and metric validation.
var (
	// ErrUnsupportedNeighbourhood is returned by Lookup for any symbol
	// outside the fixed N4/N8/N16/N32/N6/N18/N26/N98 set. The message text
	// matches spec.md's bit-exact wording.
	ErrUnsupportedNeighbourhood = errors.New("Unsupported neighbourhood")

	// ErrMetricNotSquare indicates a Riemannian transform matrix that is
	// not square.
	ErrMetricNotSquare = errors.New("neighborhood: metric transform must be square")

	// ErrMetricDimMismatch indicates a Riemannian transform whose
	// dimension does not match the neighbourhood's rank.
	ErrMetricDimMismatch = errors.New("neighborhood: metric dimension does not match neighbourhood rank")

	// ErrMetricNotSPD indicates a Riemannian transform that failed the
	// symmetric-positive-definite check (asymmetric, or an eigenvalue
	// <= 0).
	ErrMetricNotSPD = errors.New("neighborhood: metric transform is not symmetric positive definite")
)
