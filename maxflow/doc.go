// Package maxflow computes maximum s-t flow over a gridgraph.Graph and
// exposes the resulting min-cut as a per-node tree label.
//
// Solver is the capability set segment drivers program against: Init,
// SetTerminalCaps, SetEdgeCap, Compute, LabelOf, SetInitialLabelling (the
// last for Kohli-style warm starts between outer segmentation iterations).
// NewSolver resolves a selector symbol ("GRD-KO","GRD-PRF","GRD-PRH" for
// grid back-ends; "GEN-*" for the general-graph adapters that fall back to
// the kept core/flow packages) to a concrete Solver.
//
// BKSolver implements the Boykov–Kolmogorov augmenting-path algorithm
// specialized for regular grids: parent links are direction indices into
// the neighbourhood table rather than pointers, and growth/augmentation/
// adoption run as three explicit phases per spec.md §4.2. PushRelabel
// implements the classic FIFO and highest-level-active push-relabel
// variants directly against the same Graph.
package maxflow
