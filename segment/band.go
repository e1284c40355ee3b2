package segment

import (
	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/maxflow"
	"github.com/segcut/gridcut/neighborhood"
)

// axisAlignedSymbol returns the axis-aligned (cityblock) neighbourhood
// symbol for a grid of the given rank, used by the two-stage band
// restriction's distance transform regardless of which neighbourhood the
// cut itself uses.
func axisAlignedSymbol(rank int) string {
	if rank == 2 {
		return "N4"
	}

	return "N6"
}

// cityblockDistanceToBoundary computes, for every node, its Manhattan
// distance to the nearest node lying on the current label boundary (a
// node with an axis-aligned neighbour of a different label), via a
// multi-source breadth-first search seeded at distance 0 from every
// boundary node. Since every axis-aligned step has unit cost, this is the
// 0-1-BFS deque technique with every edge weight 1, which degenerates to
// a plain FIFO frontier — grounded on the same deque-expansion shape the
// teacher pack's island-expansion code uses, adapted from a fixed 2-D
// four-neighbour grid to an N-D axis-aligned grid.
func cityblockDistanceToBoundary(dims []int, labels []maxflow.Label) ([]int, error) {
	sys, err := neighborhood.Lookup(axisAlignedSymbol(len(dims)))
	if err != nil {
		return nil, err
	}
	topo, err := gridgraph.NewGraph(dims, sys)
	if err != nil {
		return nil, err
	}
	n := topo.NodeCount()

	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}

	queue := make([]int, 0, n)
	for v := 0; v < n; v++ {
		for i := 0; i < sys.Len(); i++ {
			nbr, ok := topo.Neighbour(v, i)
			if ok && labels[nbr] != labels[v] {
				dist[v] = 0
				queue = append(queue, v)

				break
			}
		}
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for i := 0; i < sys.Len(); i++ {
			nbr, ok := topo.Neighbour(u, i)
			if ok && dist[nbr] == -1 {
				dist[nbr] = dist[u] + 1
				queue = append(queue, nbr)
			}
		}
	}

	return dist, nil
}

// bandMask builds a Mask that fixes every node farther than radius from
// the label boundary to its stage-1 label, leaving the band itself
// Unknown for the second, denser-neighbourhood run. A node already fixed
// by base (the caller's own mask, if any) stays fixed regardless of its
// distance.
func bandMask(dims []int, labels []maxflow.Label, dist []int, radius int, base *gridgraph.Mask) (*gridgraph.Mask, error) {
	m, err := gridgraph.NewMask(dims...)
	if err != nil {
		return nil, err
	}

	for v, d := range dist {
		if base != nil && base.AtLinear(v) != gridgraph.Unknown {
			m.SetLinear(v, base.AtLinear(v))

			continue
		}
		if d > radius {
			if labels[v] == maxflow.SourceSide {
				m.SetLinear(v, gridgraph.ForegroundFixed)
			} else {
				m.SetLinear(v, gridgraph.BackgroundFixed)
			}
		}
	}

	return m, nil
}
