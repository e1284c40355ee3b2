package segment

import (
	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/neighborhood"
)

// pairwiseBoundaryEnergy sums w_i over every (node, direction) pair whose
// endpoints differ under sameLabel, halved to correct for every undirected
// edge being visited from both endpoints. Shared by every driver's energy
// computation (Chan–Vese §4.3, Mumford–Shah §4.4, Rousson–Deriche §4.5 all
// share the identical Σ w_uv·[L(u)≠L(v)] pairwise form).
func pairwiseBoundaryEnergy(dims []int, sys *neighborhood.System, n int, sameLabel func(u, v int) bool) (float64, error) {
	topo, err := gridgraph.NewGraph(dims, sys)
	if err != nil {
		return 0, err
	}

	var total float64
	for v := 0; v < n; v++ {
		for i := 0; i < sys.Len(); i++ {
			nbr, ok := topo.Neighbour(v, i)
			if !ok {
				continue
			}
			if !sameLabel(v, nbr) {
				total += sys.Offsets[i].Weight / 2
			}
		}
	}

	return total, nil
}
