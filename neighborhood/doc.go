// Package neighborhood enumerates the integer-offset direction systems a
// grid graph uses for its edges (N4/N8/N16/N32 in 2-D, N6/N18/N26/N98 in
// 3-D) and derives Cauchy–Crofton edge weights from them.
//
// What:
//
//   - Lookup resolves a neighbourhood symbol to a System: an ordered,
//     negation-closed set of integer displacement vectors plus one weight
//     per direction.
//   - Weights come from a hyperspherical Voronoi partition of the
//     normalized directions: 2-D reduces to an angular sort, 3-D uses a
//     deterministic area-preserving sampling approximation (spec.md §9
//     permits this in place of an exact spherical Voronoi diagram, which
//     no library in this module's dependency surface provides).
//   - An optional Riemannian transform M (symmetric positive definite)
//     reweights directions for anisotropic metrics, verified via
//     matrix/ops's Jacobi eigendecomposition and LU-based determinant.
//
// Direction ordering is stable across calls (deterministic generation plus
// a fixed sort), which is what lets gridgraph store parent links as
// direction indices rather than pointers.
package neighborhood
