package maxflow

import (
	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/neighborhood"
)

// prVariant selects the active-node ordering rule.
type prVariant int

const (
	prFIFO prVariant = iota
	prHighestLevel
)

// PushRelabelSolver implements the classic preflow-push algorithm directly
// against a gridgraph.Graph, with two active-node ordering rules: FIFO
// (GRD-PRF) and highest-level-first (GRD-PRH). Terminal excess is treated
// as two virtual arcs (from a virtual source, to a virtual sink) folded
// into the per-node net value the same way gridgraph.Graph already stores
// it; this loses no max-flow-relevant information because any overlap
// between a node's source and sink capacity cancels without affecting the
// cut, which is exactly why the grid graph only tracks the net e(v).
type PushRelabelSolver struct {
	g       *gridgraph.Graph
	variant prVariant

	height    []int32
	excess    []float64
	toSinkCap []float64

	active   []int
	queued   []bool

	flow float64
	done bool
}

var _ Solver = (*PushRelabelSolver)(nil)

// NewPushRelabelFIFO constructs an uninitialized FIFO push-relabel solver.
func NewPushRelabelFIFO() *PushRelabelSolver {
	return &PushRelabelSolver{variant: prFIFO}
}

// NewPushRelabelHighestLevel constructs an uninitialized highest-level-first
// push-relabel solver.
func NewPushRelabelHighestLevel() *PushRelabelSolver {
	return &PushRelabelSolver{variant: prHighestLevel}
}

// Init allocates state for a grid of the given shape under the named
// neighbourhood system.
func (s *PushRelabelSolver) Init(dims []int, sysSymbol string) error {
	sys, err := neighborhood.Lookup(sysSymbol)
	if err != nil {
		return err
	}

	g, err := gridgraph.NewGraph(dims, sys)
	if err != nil {
		return err
	}

	n := g.NodeCount()
	s.g = g
	s.height = make([]int32, n)
	s.excess = make([]float64, n)
	s.toSinkCap = make([]float64, n)
	s.active = s.active[:0]
	s.queued = make([]bool, n)
	s.flow = 0
	s.done = false

	return nil
}

// SetTerminalCaps adds capSource to c_s(node) and capSink to c_t(node).
func (s *PushRelabelSolver) SetTerminalCaps(node int, capSource, capSink float64) error {
	if s.g == nil {
		return ErrNotInitialized
	}

	return s.g.AddTerminalCap(node, capSource, capSink)
}

// SetEdgeCap sets the undirected edge capacity between node and its
// neighbour in direction dir.
func (s *PushRelabelSolver) SetEdgeCap(node, dir int, cap float64) error {
	if s.g == nil {
		return ErrNotInitialized
	}

	return s.g.SetEdgeCap(node, dir, cap)
}

// SetInitialLabelling is a no-op: push-relabel does not reuse search-tree
// state between outer iterations the way the Kohli-dynamic solver does.
func (s *PushRelabelSolver) SetInitialLabelling(labels []Label) error {
	if s.g == nil {
		return ErrNotInitialized
	}

	return nil
}

// Compute runs preflow-push to completion and returns the max-flow value.
func (s *PushRelabelSolver) Compute() (float64, error) {
	if s.g == nil {
		return 0, ErrNotInitialized
	}
	if s.done {
		return s.flow, nil
	}

	n := s.g.NodeCount()
	for v := 0; v < n; v++ {
		e := s.g.TermExcess(v)
		if e > s.g.Epsilon() {
			s.excess[v] = e
			s.enqueue(v)
		} else if e < -s.g.Epsilon() {
			s.toSinkCap[v] = -e
		}
	}

	for {
		u, ok := s.nextActive()
		if !ok {
			break
		}
		s.discharge(u)
	}

	s.done = true

	return s.flow, nil
}

// LabelOf returns the min-cut side of node: a node with height >= n+1 (it
// was relabelled past every possible residual path to the sink) is on the
// source side; sink-reachable residual capacity means it stayed low.
func (s *PushRelabelSolver) LabelOf(node int) Label {
	if int(s.height[node]) >= s.g.NodeCount() {
		return SourceSide
	}

	return SinkSide
}

func (s *PushRelabelSolver) enqueue(v int) {
	if s.queued[v] {
		return
	}
	s.queued[v] = true
	s.active = append(s.active, v)
}

// nextActive pops the next node to discharge: index 0 (FIFO) or the
// highest current height (GRD-PRH, via a linear scan — adequate for the
// grid sizes this library targets).
func (s *PushRelabelSolver) nextActive() (int, bool) {
	for len(s.active) > 0 {
		var pick int
		if s.variant == prFIFO {
			pick = 0
		} else {
			pick = 0
			for i, v := range s.active {
				if s.height[v] > s.height[s.active[pick]] {
					pick = i
				}
			}
		}

		v := s.active[pick]
		s.active = append(s.active[:pick], s.active[pick+1:]...)
		s.queued[v] = false
		if s.excess[v] > s.g.Epsilon() {
			return v, true
		}
	}

	return 0, false
}

// discharge pushes u's excess to admissible neighbours (including the
// virtual sink arc), relabelling u when no admissible arc remains.
func (s *PushRelabelSolver) discharge(u int) {
	k := s.g.System().Len()

	for s.excess[u] > s.g.Epsilon() {
		pushed := false

		if s.toSinkCap[u] > s.g.Epsilon() && s.height[u] == 1 {
			delta := minF(s.excess[u], s.toSinkCap[u])
			s.toSinkCap[u] -= delta
			s.excess[u] -= delta
			s.flow += delta
			pushed = true
		}

		for i := 0; i < k && s.excess[u] > s.g.Epsilon(); i++ {
			v, ok := s.g.Neighbour(u, i)
			if !ok || s.g.IsFixed(v) {
				continue
			}
			cap := s.g.Residual(u, i)
			if cap <= s.g.Epsilon() || s.height[u] != s.height[v]+1 {
				continue
			}
			delta := minF(s.excess[u], cap)
			s.g.AugmentEdge(u, i, delta)
			s.excess[u] -= delta
			s.excess[v] += delta
			pushed = true
			if v != u {
				s.enqueue(v)
			}
		}

		if s.excess[u] <= s.g.Epsilon() {
			break
		}
		if !pushed {
			s.relabel(u)
		}
	}

	if s.excess[u] > s.g.Epsilon() {
		s.enqueue(u)
	}
}

// relabel raises u's height to one more than the minimum height among its
// admissible residual neighbours (including the virtual sink, height 0).
func (s *PushRelabelSolver) relabel(u int) {
	k := s.g.System().Len()
	minHeight := int32(1 << 30)

	if s.toSinkCap[u] > s.g.Epsilon() {
		minHeight = 0
	}
	for i := 0; i < k; i++ {
		v, ok := s.g.Neighbour(u, i)
		if !ok || s.g.IsFixed(v) {
			continue
		}
		if s.g.Residual(u, i) > s.g.Epsilon() && s.height[v] < minHeight {
			minHeight = s.height[v]
		}
	}
	if minHeight < int32(1<<30) {
		s.height[u] = minHeight + 1
	} else {
		s.height[u] = int32(s.g.NodeCount())
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}
