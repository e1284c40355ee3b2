package maxflow

import (
	"fmt"
	"strconv"

	"github.com/segcut/gridcut/core"
	"github.com/segcut/gridcut/flow"
	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/neighborhood"
)

// generalBackend names which flow package entry point a generalAdapter
// dispatches Compute to.
type generalBackend int

const (
	backendFordFulkerson generalBackend = iota
	backendEdmondsKarp
	backendDinic
)

// weightScale converts the grid's float64 capacities to the integer
// weights core.Graph requires, trading precision for access to the
// general-graph flow package. Fractional capacities below 1/weightScale
// collapse to the same integer edge weight.
const weightScale = 1 << 16

const (
	sourceVertexID = "$source"
	sinkVertexID   = "$sink"
)

// generalAdapter implements Solver by building an explicit *core.Graph
// with virtual source/sink vertices, one vertex per grid node, and one
// directed edge per (node, direction) pair plus the terminal arcs, then
// dispatching to one of flow.FordFulkerson, flow.EdmondsKarp, or
// flow.Dinic. The residual graph returned by those algorithms encodes the
// min-cut as whatever remains source-reachable; LabelOf answers from a
// BFS over that residual graph computed once by Compute.
type generalAdapter struct {
	backend generalBackend

	g   *gridgraph.Graph
	sys *neighborhood.System
	n   int

	flow          float64
	sourceReached []bool
	done          bool
}

var _ Solver = (*generalAdapter)(nil)

func newGeneralAdapter(backend generalBackend) *generalAdapter {
	return &generalAdapter{backend: backend}
}

func (a *generalAdapter) Init(dims []int, sysSymbol string) error {
	sys, err := neighborhood.Lookup(sysSymbol)
	if err != nil {
		return err
	}

	g, err := gridgraph.NewGraph(dims, sys)
	if err != nil {
		return err
	}

	a.g = g
	a.sys = sys
	a.n = g.NodeCount()
	a.flow = 0
	a.sourceReached = nil
	a.done = false

	return nil
}

func (a *generalAdapter) SetTerminalCaps(node int, capSource, capSink float64) error {
	if a.g == nil {
		return ErrNotInitialized
	}

	return a.g.AddTerminalCap(node, capSource, capSink)
}

func (a *generalAdapter) SetEdgeCap(node, dir int, cap float64) error {
	if a.g == nil {
		return ErrNotInitialized
	}

	return a.g.SetEdgeCap(node, dir, cap)
}

// SetInitialLabelling is a no-op: the general-graph backends always solve
// from scratch and have no warm-start hook to feed it to.
func (a *generalAdapter) SetInitialLabelling(labels []Label) error {
	if a.g == nil {
		return ErrNotInitialized
	}

	return nil
}

func nodeVertexID(node int) string {
	return strconv.Itoa(node)
}

func scaleWeight(cap float64) int64 {
	w := int64(cap*weightScale + 0.5)
	if w < 0 {
		w = 0
	}

	return w
}

// buildCoreGraph mirrors the grid's node/direction structure into a fresh
// directed, weighted core.Graph with an explicit source and sink vertex.
// Undirected grid edges become one directed core.Graph edge per traversal
// direction actually present on the node (node -> neighbour), matching the
// residual semantics flow.* already expects.
func (a *generalAdapter) buildCoreGraph() (*core.Graph, error) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())

	if err := g.AddVertex(sourceVertexID); err != nil {
		return nil, err
	}
	if err := g.AddVertex(sinkVertexID); err != nil {
		return nil, err
	}
	for v := 0; v < a.n; v++ {
		if err := g.AddVertex(nodeVertexID(v)); err != nil {
			return nil, err
		}
	}

	for v := 0; v < a.n; v++ {
		vid := nodeVertexID(v)

		e := a.g.TermExcess(v)
		if e > a.g.Epsilon() {
			if w := scaleWeight(e); w > 0 {
				if _, err := g.AddEdge(sourceVertexID, vid, w); err != nil {
					return nil, err
				}
			}
		} else if e < -a.g.Epsilon() {
			if w := scaleWeight(-e); w > 0 {
				if _, err := g.AddEdge(vid, sinkVertexID, w); err != nil {
					return nil, err
				}
			}
		}

		for i := 0; i < a.sys.Len(); i++ {
			nbr, ok := a.g.Neighbour(v, i)
			if !ok {
				continue
			}
			cap := a.g.Residual(v, i)
			if cap <= a.g.Epsilon() {
				continue
			}
			w := scaleWeight(cap)
			if w == 0 {
				continue
			}
			if _, err := g.AddEdge(vid, nodeVertexID(nbr), w); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

func (a *generalAdapter) Compute() (float64, error) {
	if a.g == nil {
		return 0, ErrNotInitialized
	}
	if a.done {
		return a.flow, nil
	}

	g, err := a.buildCoreGraph()
	if err != nil {
		return 0, err
	}

	opts := flow.DefaultOptions()

	var maxFlow float64
	var residual *core.Graph

	switch a.backend {
	case backendFordFulkerson:
		maxFlow, residual, err = flow.FordFulkerson(g, sourceVertexID, sinkVertexID, opts)
	case backendEdmondsKarp:
		maxFlow, residual, err = flow.EdmondsKarp(g, sourceVertexID, sinkVertexID, opts)
	case backendDinic:
		maxFlow, residual, err = flow.Dinic(g, sourceVertexID, sinkVertexID, opts)
	default:
		return 0, fmt.Errorf("maxflow: %w", ErrUnknownSelector)
	}
	if err != nil {
		return 0, err
	}

	a.flow = maxFlow / weightScale
	a.sourceReached = reachableFrom(residual, sourceVertexID)
	a.done = true

	return a.flow, nil
}

// reachableFrom runs a BFS over g's positive-weight edges starting at
// start and returns, per vertex ID parsed back to a node index, whether it
// was reached. Vertex IDs that do not parse as a node index (the virtual
// source/sink) are skipped.
func reachableFrom(g *core.Graph, start string) []bool {
	n := g.VertexCount() - 2 // exclude source and sink
	reached := make([]bool, n)

	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		if node, err := strconv.Atoi(u); err == nil && node >= 0 && node < n {
			reached[node] = true
		}

		edges, err := g.Neighbors(u)
		if err != nil {
			continue
		}
		for _, e := range edges {
			v := e.To
			if e.From != u {
				if e.Directed {
					continue
				}
				v = e.From
			}
			if e.Weight <= 0 || visited[v] {
				continue
			}
			visited[v] = true
			queue = append(queue, v)
		}
	}

	return reached
}

// LabelOf returns SourceSide for any node still reachable from the
// virtual source in the post-flow residual graph, SinkSide otherwise.
func (a *generalAdapter) LabelOf(node int) Label {
	if a.sourceReached != nil && node < len(a.sourceReached) && a.sourceReached[node] {
		return SourceSide
	}

	return SinkSide
}
