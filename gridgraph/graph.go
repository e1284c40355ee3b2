package gridgraph

import (
	"fmt"

	"github.com/segcut/gridcut/neighborhood"
)

// Graph holds the residual max-flow state of an N-D regular grid: one
// terminal excess e(v) = c_s(v) - c_t(v) per node, and one forward
// residual capacity per (node, direction) pair. Nodes are addressed both
// by N-D coordinate and by a row-major flat index ("node").
//
// Graph itself does no locking; callers (segment drivers, maxflow
// solvers) own a Graph exclusively for the duration of one max-flow call.
type Graph struct {
	dims    []int
	strides []int
	n       int

	sys *neighborhood.System

	termExcess []float64 // e(v), one per node
	residual   []float64 // residual[node*sys.Len()+i], forward capacity from node in direction i

	mask    *Mask
	epsilon float64
}

// NewGraph constructs a Graph over a grid of the given shape (2 or 3
// axes), wired to neighbourhood system sys. Returns ErrEmptyShape if dims
// is empty, ErrRankMismatch if sys.Rank != len(dims).
// Complexity: O(N * k) time and memory, N = product(dims), k = sys.Len().
func NewGraph(dims []int, sys *neighborhood.System, opts ...GraphOption) (*Graph, error) {
	if len(dims) == 0 {
		return nil, ErrEmptyShape
	}
	if sys.Rank != len(dims) {
		return nil, fmt.Errorf("gridgraph: shape rank %d, system rank %d: %w", len(dims), sys.Rank, ErrRankMismatch)
	}

	cp := make([]int, len(dims))
	copy(cp, dims)

	strides := make([]int, len(dims))
	acc := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= dims[i]
	}
	n := acc

	g := &Graph{
		dims:       cp,
		strides:    strides,
		n:          n,
		sys:        sys,
		termExcess: make([]float64, n),
		residual:   make([]float64, n*sys.Len()),
		epsilon:    defaultEpsilon(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.mask != nil {
		maskDims := g.mask.Shape()
		if len(maskDims) != len(dims) {
			return nil, ErrMaskShapeMismatch
		}
		for i := range dims {
			if maskDims[i] != dims[i] {
				return nil, ErrMaskShapeMismatch
			}
		}
	}

	return g, nil
}

// Shape returns a copy of the grid's axis lengths.
func (g *Graph) Shape() []int {
	cp := make([]int, len(g.dims))
	copy(cp, g.dims)

	return cp
}

// NodeCount returns the total number of nodes, product(dims).
func (g *Graph) NodeCount() int { return g.n }

// System returns the neighbourhood system the graph was built with.
func (g *Graph) System() *neighborhood.System { return g.sys }

// Mask returns the graph's mask, or nil if unmasked.
func (g *Graph) Mask() *Mask { return g.mask }

// Coordinate converts a flat node index to an N-D coordinate.
// Complexity: O(rank).
func (g *Graph) Coordinate(node int) []int {
	idx := make([]int, len(g.dims))
	rem := node
	for i := range g.dims {
		idx[i] = rem / g.strides[i]
		rem -= idx[i] * g.strides[i]
	}

	return idx
}

// Linear converts an N-D coordinate to a flat node index without bounds
// checking. Complexity: O(rank).
func (g *Graph) Linear(idx []int) int {
	off := 0
	for i, v := range idx {
		off += v * g.strides[i]
	}

	return off
}

// InBounds reports whether idx lies within the grid on every axis.
// Complexity: O(rank).
func (g *Graph) InBounds(idx []int) bool {
	for i, v := range idx {
		if v < 0 || v >= g.dims[i] {
			return false
		}
	}

	return true
}

// Neighbour returns the node reached from node by direction i, and
// whether that node lies within the grid. Complexity: O(rank).
func (g *Graph) Neighbour(node, i int) (neighbour int, ok bool) {
	coord := g.Coordinate(node)
	delta := g.sys.Offsets[i].Delta
	for a := range coord {
		coord[a] += delta[a]
	}
	if !g.InBounds(coord) {
		return 0, false
	}

	return g.Linear(coord), true
}

// TermExcess returns e(v) = c_s(v) - c_t(v) for node v.
func (g *Graph) TermExcess(node int) float64 { return g.termExcess[node] }

// SetTermExcess overwrites e(v) directly; used by maxflow solvers to track
// residual terminal capacity as flow is pushed during a solve.
func (g *Graph) SetTermExcess(node int, v float64) { g.termExcess[node] = v }

// AddTerminalCap adds capSource to c_s(v) and capSink to c_t(v), i.e.
// termExcess[v] += capSource - capSink. Both must be >= 0.
// Complexity: O(1).
func (g *Graph) AddTerminalCap(node int, capSource, capSink float64) error {
	if capSource < 0 || capSink < 0 {
		return ErrNegativeCapacity
	}
	g.termExcess[node] += capSource - capSink

	return nil
}

// edgeSlot computes the flat offset of (node, direction) into residual.
func (g *Graph) edgeSlot(node, i int) int { return node*g.sys.Len() + i }

// Residual returns the forward residual capacity from node in direction i.
func (g *Graph) Residual(node, i int) float64 { return g.residual[g.edgeSlot(node, i)] }

// SetResidual overwrites the forward residual capacity from node in
// direction i; used by maxflow solvers during augmentation.
func (g *Graph) SetResidual(node, i int, v float64) { g.residual[g.edgeSlot(node, i)] = v }

// SetEdgeCap sets the undirected edge capacity cap between node and its
// neighbour in direction i, symmetrically: both Residual(node,i) and
// Residual(neighbour, opposite(i)) are set to cap. cap must be >= 0. If the
// neighbour falls outside the grid, SetEdgeCap is a no-op (boundary edges
// simply do not exist).
// Complexity: O(rank).
func (g *Graph) SetEdgeCap(node, i int, cap float64) error {
	if cap < 0 {
		return ErrNegativeCapacity
	}
	neighbour, ok := g.Neighbour(node, i)
	if !ok {
		return nil
	}
	g.SetResidual(node, i, cap)
	g.SetResidual(neighbour, g.sys.Opposite(i), cap)

	return nil
}

// AugmentEdge pushes delta units of flow from node to its neighbour in
// direction i: the forward residual decreases by delta and the reverse
// residual (from the neighbour back to node) increases by delta, per the
// max-flow symmetry invariant. Complexity: O(rank).
func (g *Graph) AugmentEdge(node, i int, delta float64) {
	neighbour, ok := g.Neighbour(node, i)
	if !ok {
		return
	}
	slot := g.edgeSlot(node, i)
	g.residual[slot] -= delta
	oppSlot := g.edgeSlot(neighbour, g.sys.Opposite(i))
	g.residual[oppSlot] += delta
}

// FoldFixedNeighbour adds a fixed neighbour's contribution directly into
// an Unknown node's terminal excess instead of creating an edge: if the
// neighbour of node in direction i is ForegroundFixed, capToNeighbour
// becomes source capacity on node (it is already "cut" from the sink
// side); if BackgroundFixed, it becomes sink capacity. Reports whether the
// neighbour was fixed (and therefore folded) so callers can skip the
// ordinary SetEdgeCap call for that direction.
//
// Per spec's "once per direction, summed" resolution: call this once for
// each direction a node has, and let contributions from multiple fixed
// neighbours accumulate into the same node's terminal excess rather than
// being counted through both the node's and the neighbour's direction.
// Complexity: O(rank).
func (g *Graph) FoldFixedNeighbour(node, i int, capToNeighbour float64) (folded bool, err error) {
	if g.mask == nil {
		return false, nil
	}
	neighbour, ok := g.Neighbour(node, i)
	if !ok {
		return false, nil
	}

	switch g.mask.AtLinear(neighbour) {
	case ForegroundFixed:
		return true, g.AddTerminalCap(node, capToNeighbour, 0)
	case BackgroundFixed:
		return true, g.AddTerminalCap(node, 0, capToNeighbour)
	default:
		return false, nil
	}
}

// IsFixed reports whether node is pinned by the mask (Background/Foreground),
// as opposed to Unknown or unmasked.
func (g *Graph) IsFixed(node int) bool {
	if g.mask == nil {
		return false
	}

	return g.mask.AtLinear(node) != Unknown
}

// Epsilon returns the capacity-rounding threshold the graph was built
// with.
func (g *Graph) Epsilon() float64 { return g.epsilon }
