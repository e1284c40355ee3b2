// Package gridgraph holds the residual state of an N-D regular grid graph:
// per-node terminal excess and per-(node, direction) forward residual
// capacities, as consumed by the maxflow package's Boykov–Kolmogorov /
// Kohli solver.
//
// A Graph is built fresh each outer segmentation iteration from the
// current region statistics (intensity means, variances) via SetEdgeCap
// and AddTerminalCap, then handed to a maxflow.Solver. Fixed mask nodes
// (BackgroundFixed / ForegroundFixed) never get their own terminal/edge
// state; instead their contribution is folded once per direction into the
// terminal excess of their Unknown neighbours, per FoldFixedNeighbour.
package gridgraph
