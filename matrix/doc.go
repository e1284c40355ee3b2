// Package matrix provides small, dependency-free linear-algebra primitives
// used by the neighborhood package to evaluate Riemannian metric tensors:
// a row-major Dense matrix, and (in the ops subpackage) LU-based determinant
// and Jacobi eigendecomposition for symmetric-positive-definite checks.
//
// It is intentionally narrow: no adjacency/incidence graph conversions, no
// general-purpose numerical suite. Everything here exists to answer one
// question for a caller-supplied metric tensor M: is M symmetric positive
// definite, and what is det(M)?
package matrix
