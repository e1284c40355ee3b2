// Package segment implements the variational image segmentation drivers
// built on top of maxflow/gridgraph/neighborhood: Chan–Vese two-phase,
// piecewise-constant Mumford–Shah via α-expansion, and the Rousson–Deriche
// variance-aware variant.
//
// What:
//
//   - Each driver reduces a continuous energy functional to a sequence of
//     binary min-cut subproblems on an N-D grid graph, alternating between
//     solving the cut for fixed region statistics and re-estimating those
//     statistics from the cut.
//   - ChanVese and RoussonDeriche solve one binary subproblem per outer
//     iteration; MumfordShah solves one binary subproblem per label per
//     α-expansion round.
//   - Gibou–Fedkiw two-mean and 1-D Lloyd k-means live here as the
//     driver-internal initializers spec.md names, not as general-purpose
//     numerical utilities.
//
// Why:
//
//   - Keeping the min-cut reduction (data term → terminal capacities,
//     neighbour weight → edge capacity) in one place (graphbuild.go) means
//     all three drivers share identical masked-equivalence and
//     neighbourhood-symmetry behaviour instead of re-deriving it three
//     times.
package segment
