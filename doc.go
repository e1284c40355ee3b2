// Package gridcut is a grid-based combinatorial optimization core for image
// segmentation via graph-cut energy minimization.
//
// Given an N-dimensional image (N ∈ {2,3}) and a regional/boundary energy
// functional, gridcut computes a labelling that minimizes that energy by
// reduction to a sequence of s-t minimum cuts on a weighted grid graph.
//
// Under the hood, everything is organized into focused subpackages:
//
//	ndarray/      — N-D dense array: shape, strides, iteration, bounded neighbor indexing.
//	neighborhood/ — neighbor offset systems (N4/N8/N16/N32, N6/N18/N26/N98) and
//	                Cauchy–Crofton edge-weight derivation, with optional Riemannian anisotropy.
//	gridgraph/    — the grid graph: per-node terminal capacities and per-direction
//	                residuals, masked nodes folded into neighbor terminals.
//	maxflow/      — augmenting-path max-flow engines specialized for grid graphs
//	                (Boykov–Kolmogorov / Kohli dynamic, grid push-relabel), plus a
//	                factory that also exposes general-graph fallbacks via core/flow.
//	segment/      — iterative segmentation drivers: Chan–Vese two-phase,
//	                piecewise-constant Mumford–Shah via α-expansion, Rousson–Deriche.
//	core/         — general-purpose graph primitives (kept for the GEN-* max-flow
//	                fallback path in maxflow's factory).
//	flow/         — general-graph max-flow algorithms (Ford–Fulkerson, Edmonds–Karp,
//	                Dinic) reused by the same fallback path.
//	matrix/       — Dense matrices and LU/Jacobi-eigen routines backing the
//	                Riemannian metric support in neighborhood.
//
// Out of scope (left to external collaborators at their interface with this
// core): host-language array marshalling, logging targets, CLI/front-end
// wrappers, image I/O, and utility transforms such as general-purpose distance
// transforms, intensity normalization, or simple k-means outside what the
// drivers need internally.
package gridcut
