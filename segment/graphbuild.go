package segment

import (
	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/matrix"
	"github.com/segcut/gridcut/maxflow"
	"github.com/segcut/gridcut/neighborhood"
)

// defaultSelector is the max-flow back-end every driver uses unless the
// caller overrides it via Options.MaxFlowSelector.
const defaultSelector = "GRD-KO"

// resolveSystem resolves a neighbourhood symbol, folding a non-uniform
// voxel spacing into a diagonal Riemannian metric transform (spec.md §4.1:
// "replace d_i by M·d_i"). A nil or all-ones spacing uses the isotropic
// System directly.
func resolveSystem(symbol string, spacing []float64) (*neighborhood.System, error) {
	if isUnitSpacing(spacing) {
		return neighborhood.Lookup(symbol)
	}

	m, err := matrix.NewDense(len(spacing), len(spacing))
	if err != nil {
		return nil, err
	}
	for i, s := range spacing {
		if err := m.Set(i, i, s); err != nil {
			return nil, err
		}
	}

	return neighborhood.LookupAnisotropic(symbol, m)
}

func isUnitSpacing(spacing []float64) bool {
	if len(spacing) == 0 {
		return true
	}
	for _, s := range spacing {
		if s != 1 {
			return false
		}
	}

	return true
}

// selectorOrDefault returns selector, or defaultSelector if selector is
// empty.
func selectorOrDefault(selector string) string {
	if selector == "" {
		return defaultSelector
	}

	return selector
}

// binaryMinCut builds and solves one binary min-cut subproblem over a grid
// of shape dims under neighbourhood sys: capSource[v]/capSink[v] are the
// node's t-link capacities (the data term per spec.md §4.3/§4.4 written as
// "cost of the other label", per the standard min-cut reduction), and mu
// scales every pairwise edge by the Cauchy–Crofton weight for its
// direction.
//
// A fixed mask node is excluded from the min-cut entirely and its label is
// read directly from the mask; its contribution to each Unknown neighbour
// is folded into that neighbour's terminal capacity instead of an edge,
// per spec.md §4.2's masked variant ("once per direction, summed" per
// spec.md §9's Open Question resolution). Apart from handing the mask to a
// *maxflow.BKSolver through InitMasked, the solver is addressed only
// through its capability-set interface (Init/SetTerminalCaps/SetEdgeCap/Compute/
// LabelOf); the fold arithmetic is replicated here rather than reaching
// into a solver's internal gridgraph.Graph, which the Solver interface
// deliberately does not expose.
func binaryMinCut(dims []int, sys *neighborhood.System, mu float64, capSource, capSink []float64, mask *gridgraph.Mask, selector string) ([]maxflow.Label, float64, error) {
	topo, err := gridgraph.NewGraph(dims, sys)
	if err != nil {
		return nil, 0, err
	}
	n := topo.NodeCount()

	solver, err := maxflow.NewSolver(selectorOrDefault(selector))
	if err != nil {
		return nil, 0, err
	}

	if bk, ok := solver.(*maxflow.BKSolver); ok && mask != nil {
		err = bk.InitMasked(dims, sys.Symbol, mask)
	} else {
		err = solver.Init(dims, sys.Symbol)
	}
	if err != nil {
		return nil, 0, err
	}

	for v := 0; v < n; v++ {
		if mask != nil && mask.AtLinear(v) != gridgraph.Unknown {
			continue
		}

		cs, ck := capSource[v], capSink[v]
		for i := 0; i < sys.Len(); i++ {
			w := mu * sys.Offsets[i].Weight
			if w <= 0 {
				continue
			}
			nbr, ok := topo.Neighbour(v, i)
			if !ok {
				continue
			}
			if mask != nil {
				switch mask.AtLinear(nbr) {
				case gridgraph.ForegroundFixed:
					cs += w
					continue
				case gridgraph.BackgroundFixed:
					ck += w
					continue
				}
			}
			if err := solver.SetEdgeCap(v, i, w); err != nil {
				return nil, 0, err
			}
		}
		if err := solver.SetTerminalCaps(v, cs, ck); err != nil {
			return nil, 0, err
		}
	}

	flowVal, err := solver.Compute()
	if err != nil {
		return nil, 0, err
	}

	labels := make([]maxflow.Label, n)
	for v := 0; v < n; v++ {
		if mask != nil {
			switch mask.AtLinear(v) {
			case gridgraph.ForegroundFixed:
				labels[v] = maxflow.SourceSide
				continue
			case gridgraph.BackgroundFixed:
				labels[v] = maxflow.SinkSide
				continue
			}
		}
		labels[v] = solver.LabelOf(v)
	}

	return labels, flowVal, nil
}
