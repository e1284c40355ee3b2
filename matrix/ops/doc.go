// Package ops provides advanced matrix operations for the matrix package:
// Doolittle LU decomposition, determinant via LU, and Jacobi eigenvalue
// decomposition of symmetric matrices.
package ops
