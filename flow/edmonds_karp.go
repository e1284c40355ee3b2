package flow

import (
	"context"
	"fmt"
	"math"

	"github.com/segcut/gridcut/core"
)

// EdmondsKarp computes the maximum flow from source→sink
// using the Edmonds–Karp algorithm (BFS for shortest augmenting paths).
//
// It returns:
//   - maxFlow: total flow value
//   - residual: residual-capacity graph after flow
//   - err: non-nil on missing vertices, negative capacities, or context cancellation.
//
// Options (nil uses defaults):
//   - Epsilon: capacities ≤ Epsilon treated as zero (default 1e-9)
//   - Verbose:  print each augmentation via fmt.Printf
//
// Complexity: O(V · E²)
// Memory:     O(V + E)
func EdmondsKarp(
	g *core.Graph,
	source, sink string,
	opts *FlowOptions,
) (maxFlow float64, residual *core.Graph, err error) {
	// 1) Set epsilon and context
	if opts == nil {
		opts = &FlowOptions{}
	}
	opts.normalize()
	ctx := opts.Ctx
	eps := opts.Epsilon

	// 2) Validate presence of source/sink
	if !g.HasVertex(source) {
		return 0, nil, ErrSourceNotFound
	}
	if !g.HasVertex(sink) {
		return 0, nil, ErrSinkNotFound
	}

	// 3) Build residual graph (copy vertices, sum parallel edges)
	residual = core.NewGraph(core.WithDirected(g.Directed()), core.WithWeighted())
	for _, id := range g.Vertices() {
		if err := residual.AddVertex(id); err != nil {
			return 0, nil, err
		}
	}
	capSums := make(map[string]map[string]float64, len(g.Vertices()))
	for _, u := range g.Vertices() {
		edges, err := g.Neighbors(u)
		if err != nil {
			return 0, nil, err
		}
		for _, e := range edges {
			v := e.To
			if e.From != u {
				v = e.From
			}
			if v == u {
				continue
			}
			if float64(e.Weight) < -eps {
				return 0, nil, EdgeError{From: u, To: v, Cap: float64(e.Weight)}
			}
			if capSums[u] == nil {
				capSums[u] = make(map[string]float64)
			}
			capSums[u][v] += float64(e.Weight)
		}
	}
	for u, nbrs := range capSums {
		for v, capSum := range nbrs {
			if capSum > eps {
				if _, err := residual.AddEdge(u, v, int64(capSum)); err != nil {
					return 0, nil, err
				}
			}
		}
	}

	// 4) Main loop: find BFS augmenting paths until none remain
	for {
		path, bottle := bfsAugmentingPath(ctx, residual, source, sink, eps)
		if len(path) == 0 || bottle <= eps {
			if err := ctx.Err(); err != nil {
				return 0, nil, err
			}
			break
		}
		if opts != nil && opts.Verbose {
			fmt.Printf("augmenting path %v with flow %.3g\n", path, bottle)
		}
		maxFlow += bottle

		// 5) Augment along the path
		for i := 0; i < len(path)-1; i++ {
			u, v := path[i], path[i+1]
			// decrease forward capacity
			if e := findEdge(residual, u, v); e != nil {
				e.Weight = int64(math.Max(0, float64(e.Weight)-bottle))
			}
			// increase reverse capacity
			if re := findEdge(residual, v, u); re != nil {
				re.Weight = int64(float64(re.Weight) + bottle)
			} else if _, err := residual.AddEdge(v, u, int64(bottle)); err != nil {
				return 0, nil, err
			}
		}
	}

	// Drop saturated edges so the returned residual holds only positive capacity.
	out := core.NewGraph(core.WithDirected(g.Directed()), core.WithWeighted())
	for _, id := range residual.Vertices() {
		if err := out.AddVertex(id); err != nil {
			return 0, nil, err
		}
	}
	for _, e := range residual.Edges() {
		if float64(e.Weight) > eps {
			if _, err := out.AddEdge(e.From, e.To, e.Weight); err != nil {
				return 0, nil, err
			}
		}
	}

	return maxFlow, out, nil
}

// findEdge returns the edge from u to v in g, or nil if none exists.
func findEdge(g *core.Graph, u, v string) *core.Edge {
	edges, err := g.Neighbors(u)
	if err != nil {
		return nil
	}
	for _, e := range edges {
		if e.From == u && e.To == v {
			return e
		}
		if !e.Directed && e.From == v && e.To == u {
			return e
		}
	}

	return nil
}

// bfsAugmentingPath finds the shortest (fewest-edges) path in residual
// from source→sink with positive capacity > eps, and returns that path
// plus its bottleneck capacity. Returns nil if no path found.
func bfsAugmentingPath(
	ctx context.Context,
	g *core.Graph,
	source, sink string,
	eps float64,
) ([]string, float64) {
	// parent[v] = predecessor of v on the path
	parent := make(map[string]string, len(g.Vertices()))
	// capMap[v] = bottleneck capacity from source→v
	capMap := map[string]float64{source: math.Inf(1)}
	visited := map[string]bool{source: true}

	queue := []string{source}
	for len(queue) > 0 {
		// context cancellation check
		select {
		case <-ctx.Done():
			return nil, 0
		default:
		}
		u := queue[0]
		queue = queue[1:]
		edges, err := g.Neighbors(u)
		if err != nil {
			return nil, 0
		}
		capSum := make(map[string]float64)
		for _, e := range edges {
			nbr := e.To
			if e.From != u {
				nbr = e.From
			}
			if nbr == u {
				continue
			}
			capSum[nbr] += float64(e.Weight)
		}
		for v, cap := range capSum {
			if visited[v] {
				continue
			}
			if cap <= eps {
				continue
			}
			visited[v] = true
			parent[v] = u
			capMap[v] = math.Min(capMap[u], cap)
			if v == sink {
				// reconstruct path
				path := []string{sink}
				for cur := sink; cur != source; {
					p := parent[cur]
					path = append([]string{p}, path...)
					cur = p
				}
				return path, capMap[sink]
			}
			queue = append(queue, v)
		}
	}
	return nil, 0
}
