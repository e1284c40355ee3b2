package maxflow

import (
	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/neighborhood"
)

// treeLabel is a node's 2-bit search-tree membership.
type treeLabel uint8

const (
	free treeLabel = iota
	sourceTree
	sinkTree
)

const noParent = -1

// BKSolver implements the Boykov–Kolmogorov augmenting-path algorithm with
// Kohli-style state reuse, specialized for an N-D regular grid. Parent
// links are stored as direction indices into the graph's neighbourhood
// table, per spec.md §9.
type BKSolver struct {
	g *gridgraph.Graph

	label     []treeLabel
	parentDir []int32
	timestamp []int32
	dist      []int32
	orphaned  []bool

	active    []int
	inActive  []bool
	activeHd  int

	orphans []int

	curTime int32
	flow    float64
	done    bool
}

var _ Solver = (*BKSolver)(nil)

// NewBKSolver constructs an uninitialized BKSolver; call Init before use.
func NewBKSolver() *BKSolver { return &BKSolver{} }

// Init allocates state for a grid of the given shape under the named
// neighbourhood system. Complexity: O(N * k).
func (s *BKSolver) Init(dims []int, sysSymbol string) error {
	sys, err := neighborhood.Lookup(sysSymbol)
	if err != nil {
		return err
	}

	return s.initWithSystem(dims, sys, nil)
}

// InitMasked is the masked-variant entry point: it behaves as Init but
// attaches mask to the underlying graph so fixed nodes are skipped by
// seeding, growth and adoption. The solver does not fold a fixed
// neighbour's edge into terminal capacities; it only excludes fixed nodes
// from the search trees. Exported separately from the Solver interface
// because mask attachment needs a *gridgraph.Mask, not a bare symbol.
func (s *BKSolver) InitMasked(dims []int, sysSymbol string, mask *gridgraph.Mask) error {
	sys, err := neighborhood.Lookup(sysSymbol)
	if err != nil {
		return err
	}

	return s.initWithSystem(dims, sys, mask)
}

func (s *BKSolver) initWithSystem(dims []int, sys *neighborhood.System, mask *gridgraph.Mask) error {
	var opts []gridgraph.GraphOption
	if mask != nil {
		opts = append(opts, gridgraph.WithMask(mask))
	}
	g, err := gridgraph.NewGraph(dims, sys, opts...)
	if err != nil {
		return err
	}

	n := g.NodeCount()
	s.g = g
	s.label = make([]treeLabel, n)
	s.parentDir = make([]int32, n)
	s.timestamp = make([]int32, n)
	s.dist = make([]int32, n)
	s.orphaned = make([]bool, n)
	s.inActive = make([]bool, n)
	s.active = s.active[:0]
	s.activeHd = 0
	s.orphans = s.orphans[:0]
	s.curTime = 0
	s.flow = 0
	s.done = false
	for i := range s.parentDir {
		s.parentDir[i] = noParent
	}

	return nil
}

// SetTerminalCaps adds capSource to c_s(node) and capSink to c_t(node).
func (s *BKSolver) SetTerminalCaps(node int, capSource, capSink float64) error {
	if s.g == nil {
		return ErrNotInitialized
	}

	return s.g.AddTerminalCap(node, capSource, capSink)
}

// SetEdgeCap sets the undirected edge capacity between node and its
// neighbour in direction dir.
func (s *BKSolver) SetEdgeCap(node, dir int, cap float64) error {
	if s.g == nil {
		return ErrNotInitialized
	}

	return s.g.SetEdgeCap(node, dir, cap)
}

// SetInitialLabelling seeds tree membership from a prior outer iteration.
// Nodes are activated from their seeded tree so growth resumes immediately
// rather than rebuilding from terminal excess alone; this is the Kohli
// dynamic-reuse hook. A nil or empty labels slice is a no-op (equivalent
// to a from-scratch rebuild, which spec.md explicitly allows).
func (s *BKSolver) SetInitialLabelling(labels []Label) error {
	if s.g == nil {
		return ErrNotInitialized
	}
	if len(labels) == 0 {
		return nil
	}
	if len(labels) != s.g.NodeCount() {
		return ErrInvariantViolation
	}
	for v, lbl := range labels {
		if lbl == SourceSide {
			s.label[v] = sourceTree
		} else {
			s.label[v] = sinkTree
		}
		s.parentDir[v] = noParent
		s.pushActive(v)
	}

	return nil
}

// Compute runs growth/augmentation/adoption to completion and returns the
// max-flow value. Complexity: polynomial, dominated by the number of
// augmenting paths times grid diameter.
func (s *BKSolver) Compute() (float64, error) {
	if s.g == nil {
		return 0, ErrNotInitialized
	}
	if s.done {
		return s.flow, nil
	}

	s.seedActiveFromTerminals()

	for {
		u, ok := s.popActive()
		if !ok {
			break
		}
		if s.orphaned[u] {
			continue
		}

		found, bridgeSrc, bridgeDir := s.grow(u)
		if found {
			delta, err := s.augment(bridgeSrc, bridgeDir)
			if err != nil {
				return 0, err
			}
			s.flow += delta
			s.adopt()
		}
		// If no path was found, u simply drops out of the active set
		// until a future augmentation reactivates a neighbour.
	}

	s.done = true

	return s.flow, nil
}

// LabelOf returns the min-cut side of node: source side is every node
// that is not IN_SINK_TREE, matching spec.md's {v : tree(v) != IN_SINK_TREE}.
func (s *BKSolver) LabelOf(node int) Label {
	if s.label[node] == sinkTree {
		return SinkSide
	}

	return SourceSide
}

// seedActiveFromTerminals initializes tree membership from terminal
// excess: e(v) > 0 roots the source tree, e(v) < 0 roots the sink tree.
// Fixed (masked) nodes never participate.
func (s *BKSolver) seedActiveFromTerminals() {
	for v := 0; v < s.g.NodeCount(); v++ {
		if s.g.IsFixed(v) || s.label[v] != free {
			continue
		}
		e := s.g.TermExcess(v)
		switch {
		case e > s.g.Epsilon():
			s.label[v] = sourceTree
			s.parentDir[v] = noParent
			s.pushActive(v)
		case e < -s.g.Epsilon():
			s.label[v] = sinkTree
			s.parentDir[v] = noParent
			s.pushActive(v)
		}
	}
}

func (s *BKSolver) pushActive(v int) {
	if s.inActive[v] {
		return
	}
	s.inActive[v] = true
	s.active = append(s.active, v)
}

func (s *BKSolver) popActive() (int, bool) {
	for s.activeHd < len(s.active) {
		v := s.active[s.activeHd]
		s.activeHd++
		if s.inActive[v] {
			s.inActive[v] = false

			return v, true
		}
	}
	s.active = s.active[:0]
	s.activeHd = 0

	return 0, false
}

// grow scans every direction from u, attaching free neighbours to u's
// tree or reporting a meeting point with the opposite tree. Returns the
// source-side node and the direction from it across the bridge edge.
func (s *BKSolver) grow(u int) (found bool, bridgeSrc, bridgeDir int) {
	tree := s.label[u]
	k := s.g.System().Len()

	for i := 0; i < k; i++ {
		v, ok := s.g.Neighbour(u, i)
		if !ok || s.g.IsFixed(v) {
			continue
		}

		var cap float64
		if tree == sourceTree {
			cap = s.g.Residual(u, i)
		} else {
			cap = s.g.Residual(v, s.g.System().Opposite(i))
		}
		if cap <= s.g.Epsilon() {
			continue
		}

		switch s.label[v] {
		case free:
			s.label[v] = tree
			s.parentDir[v] = int32(s.g.System().Opposite(i))
			s.pushActive(v)
		case tree:
			// already in the same tree; adoption handles reparenting.
		default:
			// u may still have unscanned directions past i that would
			// grow a genuinely free neighbour; re-queue it so a later
			// pass resumes the scan instead of abandoning it here.
			s.pushActive(u)

			if tree == sourceTree {
				return true, u, i
			}

			return true, v, s.g.System().Opposite(i)
		}
	}

	return false, 0, 0
}

// parentOf returns the parent of x, given x.parentDir != noParent.
func (s *BKSolver) parentOf(x int) int {
	p, _ := s.g.Neighbour(x, int(s.parentDir[x]))

	return p
}

// edgeCapToParent returns the residual capacity of the edge pointing from
// x toward its parent, oriented per x's tree: for a source-tree node this
// is the parent->x edge (the direction flow was supplied); for a
// sink-tree node it is the x->parent edge.
func (s *BKSolver) edgeCapToParent(x int) float64 {
	p := s.parentOf(x)
	pd := int(s.parentDir[x])
	if s.label[x] == sourceTree {
		return s.g.Residual(p, s.g.System().Opposite(pd))
	}

	return s.g.Residual(x, pd)
}

// augment pushes the bottleneck flow along the path root(source) -> ... ->
// bridgeSrc -> (bridgeDir) -> ... -> root(sink), orphaning any node whose
// inbound edge saturates.
func (s *BKSolver) augment(bridgeSrc, bridgeDir int) (float64, error) {
	bridgeDst, ok := s.g.Neighbour(bridgeSrc, bridgeDir)
	if !ok {
		return 0, ErrInvariantViolation
	}

	srcChain := s.chainToRoot(bridgeSrc)
	sinkChain := s.chainToRoot(bridgeDst)

	delta := s.g.Residual(bridgeSrc, bridgeDir)
	if rootExcess := s.g.TermExcess(srcChain[len(srcChain)-1]); rootExcess < delta {
		delta = rootExcess
	}
	for _, x := range srcChain[:len(srcChain)-1] {
		if c := s.edgeCapToParent(x); c < delta {
			delta = c
		}
	}
	if rootExcess := -s.g.TermExcess(sinkChain[len(sinkChain)-1]); rootExcess < delta {
		delta = rootExcess
	}
	for _, x := range sinkChain[:len(sinkChain)-1] {
		if c := s.edgeCapToParent(x); c < delta {
			delta = c
		}
	}
	if delta <= 0 {
		return 0, ErrInvariantViolation
	}

	srcRoot := srcChain[len(srcChain)-1]
	s.g.SetTermExcess(srcRoot, s.g.TermExcess(srcRoot)-delta)
	for _, x := range srcChain[:len(srcChain)-1] {
		p := s.parentOf(x)
		s.g.AugmentEdge(p, s.g.System().Opposite(int(s.parentDir[x])), delta)
		if s.edgeCapToParent(x) <= s.g.Epsilon() {
			s.orphanNode(x)
		}
	}

	s.g.AugmentEdge(bridgeSrc, bridgeDir, delta)

	sinkRoot := sinkChain[len(sinkChain)-1]
	s.g.SetTermExcess(sinkRoot, s.g.TermExcess(sinkRoot)+delta)
	for _, x := range sinkChain[:len(sinkChain)-1] {
		s.g.AugmentEdge(x, int(s.parentDir[x]), delta)
		if s.edgeCapToParent(x) <= s.g.Epsilon() {
			s.orphanNode(x)
		}
	}

	return delta, nil
}

// chainToRoot returns [x, parent(x), parent(parent(x)), ..., root].
func (s *BKSolver) chainToRoot(x int) []int {
	chain := []int{x}
	cur := x
	for s.parentDir[cur] != noParent {
		cur = s.parentOf(cur)
		chain = append(chain, cur)
	}

	return chain
}

func (s *BKSolver) orphanNode(x int) {
	if s.orphaned[x] {
		return
	}
	s.orphaned[x] = true
	s.parentDir[x] = noParent
	s.orphans = append(s.orphans, x)
}

// adopt processes the orphan stack: each orphan either finds a new parent
// in its own tree, or becomes free and cascades orphan status to its
// former children. Complexity: amortized near-linear in practice.
func (s *BKSolver) adopt() {
	s.curTime++
	for len(s.orphans) > 0 {
		o := s.orphans[len(s.orphans)-1]
		s.orphans = s.orphans[:len(s.orphans)-1]
		if !s.orphaned[o] {
			continue
		}

		if s.findNewParent(o) {
			s.orphaned[o] = false

			continue
		}

		s.orphaned[o] = false
		oldTree := s.label[o]
		s.label[o] = free

		k := s.g.System().Len()
		for i := 0; i < k; i++ {
			v, ok := s.g.Neighbour(o, i)
			if !ok || s.g.IsFixed(v) {
				continue
			}
			if s.label[v] == oldTree && s.parentDir[v] != noParent && s.parentOf(v) == o {
				s.orphanNode(v)
			}
			if s.label[v] == oldTree {
				continue
			}
			// v is FREE or in the opposite tree; it becomes active if it
			// can push flow toward o (residual v -> o).
			if cap := s.g.Residual(v, s.g.System().Opposite(i)); cap > s.g.Epsilon() {
				s.pushActive(v)
			}
		}
	}
}

// findNewParent searches o's same-tree neighbours for one whose path to
// its root remains valid, preferring the shallowest candidate.
func (s *BKSolver) findNewParent(o int) bool {
	tree := s.label[o]
	k := s.g.System().Len()

	bestDir, bestDist := -1, int32(1<<30)
	for i := 0; i < k; i++ {
		p, ok := s.g.Neighbour(o, i)
		if !ok || s.g.IsFixed(p) || s.label[p] != tree {
			continue
		}

		var cap float64
		if tree == sourceTree {
			cap = s.g.Residual(p, s.g.System().Opposite(i))
		} else {
			cap = s.g.Residual(o, i)
		}
		if cap <= s.g.Epsilon() {
			continue
		}

		d, ok := s.rootDistance(p)
		if !ok {
			continue
		}
		if d+1 < bestDist {
			bestDist = d + 1
			bestDir = i
		}
	}
	if bestDir < 0 {
		return false
	}
	s.parentDir[o] = int32(bestDir)
	s.dist[o] = bestDist
	s.timestamp[o] = s.curTime

	return true
}

// rootDistance verifies that x's parent chain reaches a true root without
// passing through an orphaned node, caching the result for this pass.
func (s *BKSolver) rootDistance(x int) (int32, bool) {
	if s.timestamp[x] == s.curTime {
		if s.dist[x] < 0 {
			return 0, false
		}

		return s.dist[x], true
	}

	var visited []int
	cur := x
	var d int32
	ok := true
	for {
		if s.orphaned[cur] {
			ok = false

			break
		}
		if s.timestamp[cur] == s.curTime {
			if s.dist[cur] < 0 {
				ok = false
			} else {
				d += s.dist[cur]
			}

			break
		}
		visited = append(visited, cur)
		if s.parentDir[cur] == noParent {
			break
		}
		cur = s.parentOf(cur)
		d++
	}

	for i, n := range visited {
		s.timestamp[n] = s.curTime
		if !ok {
			s.dist[n] = -1
		} else {
			s.dist[n] = d - int32(i)
		}
	}

	if !ok {
		return 0, false
	}

	return d, true
}
