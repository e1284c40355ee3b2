package segment

import (
	"fmt"
	"math"
	"strconv"

	"github.com/segcut/gridcut/core"
	"github.com/segcut/gridcut/flow"
	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/ndarray"
	"github.com/segcut/gridcut/neighborhood"
)

// MumfordShahOptions configures the piecewise-constant α-expansion driver
// (spec.md §4.4). Lambda is either a single weight broadcast to every
// class or a per-class slice of length k.
type MumfordShahOptions struct {
	Lambda        []float64
	Convergence   float64
	MaxIter       int
	Neighbourhood string
}

// MumfordShahResult is the driver's output (spec.md §6's invocation
// contract).
type MumfordShahResult struct {
	Labels     *ndarray.LabelArray // values in [0,k)
	Energy     float64
	Iterations int
	C          []float64
	Status     Status
}

// MumfordShah minimizes the piecewise-constant Mumford–Shah functional
// E = Σ_v λ_{L(v)}(I(v)-c_{L(v)})² + Σ_uv w_uv·[L(u)≠L(v)] over a k-label
// field by round-robin α-expansion (spec.md §4.4): each outer round visits
// every candidate label α once, solves the binary "switch to α or keep
// current label" subproblem as a min-cut, and accepts the move only if it
// lowers total energy. Class means are re-estimated after each round via
// the same Lloyd mean update used to seed the field.
func MumfordShah(img *ndarray.Array, spacing []float64, k int, opts MumfordShahOptions) (MumfordShahResult, error) {
	if err := validateK(k); err != nil {
		return MumfordShahResult{}, err
	}
	lambda, err := broadcastLambda(opts.Lambda, k)
	if err != nil {
		return MumfordShahResult{}, err
	}
	if err := validateLambdas(lambda); err != nil {
		return MumfordShahResult{}, err
	}
	if err := validateMaxIter(opts.MaxIter); err != nil {
		return MumfordShahResult{}, err
	}
	if err := validateConvergence(opts.Convergence); err != nil {
		return MumfordShahResult{}, err
	}

	dims := img.Shape()
	sys, err := resolveSystem(opts.Neighbourhood, spacing)
	if err != nil {
		return MumfordShahResult{}, err
	}

	means := lloyd1D(img, k, lambda)
	labels := nearestLabel(img, means, lambda)

	status := MaxIterReached
	iterations := 0
	prevEnergy, eerr := mumfordShahEnergy(img, dims, sys, labels, lambda, means)
	if eerr != nil {
		return MumfordShahResult{}, eerr
	}

	for iter := 1; iter <= opts.MaxIter; iter++ {
		changed := false
		for alpha := 0; alpha < k; alpha++ {
			newLabels, ran, merr := expansionMove(dims, sys, img, labels, alpha, lambda, means)
			if merr != nil {
				return MumfordShahResult{}, merr
			}
			if !ran {
				continue
			}
			newEnergy, eerr := mumfordShahEnergy(img, dims, sys, newLabels, lambda, means)
			if eerr != nil {
				return MumfordShahResult{}, eerr
			}
			if newEnergy < prevEnergy {
				labels, prevEnergy = newLabels, newEnergy
				changed = true
			}
		}

		newMeans, degenerate := reestimateMeans(img, labels, k)
		if degenerate {
			arr, aerr := multiLabelsToArray(dims, labels)
			if aerr != nil {
				return MumfordShahResult{}, aerr
			}

			return MumfordShahResult{Labels: arr, Energy: prevEnergy, Iterations: iter, C: means, Status: status}, ErrDegenerate
		}

		delta := 0.0
		for c := 0; c < k; c++ {
			delta += math.Abs(newMeans[c] - means[c])
		}
		means = newMeans
		iterations = iter

		newEnergy, eerr := mumfordShahEnergy(img, dims, sys, labels, lambda, means)
		if eerr != nil {
			return MumfordShahResult{}, eerr
		}
		prevEnergy = newEnergy

		if !changed && delta <= opts.Convergence {
			status = Converged
			break
		}
	}

	arr, aerr := multiLabelsToArray(dims, labels)
	if aerr != nil {
		return MumfordShahResult{}, aerr
	}

	result := MumfordShahResult{Labels: arr, Energy: prevEnergy, Iterations: iterations, C: means, Status: status}
	if status == MaxIterReached {
		return result, ErrConvergence
	}

	return result, nil
}

// broadcastLambda expands a single-element Lambda to length k, or checks
// that a full-length Lambda already has length k.
func broadcastLambda(lambda []float64, k int) ([]float64, error) {
	switch len(lambda) {
	case 0:
		out := make([]float64, k)
		for i := range out {
			out[i] = 1
		}

		return out, nil
	case 1:
		out := make([]float64, k)
		for i := range out {
			out[i] = lambda[0]
		}

		return out, nil
	case k:
		return lambda, nil
	default:
		return nil, ErrInvalidLambda
	}
}

// nearestLabel assigns every pixel to its nearest (λ-weighted) centroid,
// seeding the α-expansion loop.
func nearestLabel(img *ndarray.Array, means, lambda []float64) []int {
	raw := img.Raw()
	labels := make([]int, len(raw))
	for off, v := range raw {
		best, bestCost := 0, math.Inf(1)
		for c := range means {
			d := v - means[c]
			cost := lambda[c] * d * d
			if cost < bestCost {
				bestCost, best = cost, c
			}
		}
		labels[off] = best
	}

	return labels
}

// reestimateMeans recomputes each class's mean from the current labelling
// (the Lloyd step of spec.md §4.4's outer loop). degenerate reports
// whether any class's region emptied out.
func reestimateMeans(img *ndarray.Array, labels []int, k int) (means []float64, degenerate bool) {
	sums := make([]float64, k)
	counts := make([]int, k)
	img.Iterate(func(off int, v float64) {
		sums[labels[off]] += v
		counts[labels[off]]++
	})

	means = make([]float64, k)
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			return nil, true
		}
		means[c] = sums[c] / float64(counts[c])
	}

	return means, false
}

// mumfordShahEnergy computes the total energy of a labelling: the
// λ-weighted data term plus the shared pairwise boundary term.
func mumfordShahEnergy(img *ndarray.Array, dims []int, sys *neighborhood.System, labels []int, lambda, means []float64) (float64, error) {
	var data float64
	img.Iterate(func(off int, v float64) {
		l := labels[off]
		d := v - means[l]
		data += lambda[l] * d * d
	})

	boundary, err := pairwiseBoundaryEnergy(dims, sys, len(labels), func(u, v int) bool { return labels[u] == labels[v] })
	if err != nil {
		return 0, err
	}

	return data + boundary, nil
}

// multiLabelsToArray packs a flat []int label field into a LabelArray.
func multiLabelsToArray(dims []int, labels []int) (*ndarray.LabelArray, error) {
	out, err := ndarray.NewLabelArray(dims...)
	if err != nil {
		return nil, err
	}
	for v, lbl := range labels {
		out.SetLinear(v, uint8(lbl))
	}

	return out, nil
}

// msWeightScale mirrors maxflow's generalAdapter weightScale: core.Graph
// requires integer edge weights, so float64 capacities are quantized
// before the subproblem is handed to flow.Dinic.
const msWeightScale = 1 << 16

// msInfCap stands in for an infinite capacity in the α-expansion
// auxiliary-node gadget below; it is chosen far larger than any realistic
// data or pairwise cost so the min-cut never severs it.
const msInfCap = 1e6

func msScaleWeight(w float64) int64 {
	scaled := int64(w*msWeightScale + 0.5)
	if scaled < 0 {
		scaled = 0
	}

	return scaled
}

const (
	msSourceID = "$source"
	msSinkID   = "$sink"
)

func msNodeID(v int) string {
	return "v" + strconv.Itoa(v)
}

// expansionMove solves the binary "switch to α or keep current label"
// subproblem for one candidate label α and returns the resulting
// labelling (identical to labels if nothing changed, the caller accepts
// it only when it lowers total energy).
//
// A grid node already labelled α is fixed (switching is a no-op); its
// contribution to an adjacent free node's pairwise term folds into that
// node's stay-cost terminal capacity, exactly as a masked node folds into
// its neighbour in binaryMinCut. Two free neighbours sharing their
// current (non-α) label are joined by a plain edge of weight w_uv, since
// cutting it costs w_uv exactly when the two nodes end up on opposite
// sides. Two free neighbours with different current labels need the
// auxiliary-node gadget from the classical α-expansion construction
// (Boykov–Veksler–Zabih): a node a with infinite-capacity arcs from both
// u and v, and an arc of weight w_uv from a to the sink, so a can only
// reach the sink side (cost 0) when both u and v also switch to α.
func expansionMove(dims []int, sys *neighborhood.System, img *ndarray.Array, labels []int, alpha int, lambda, means []float64) ([]int, bool, error) {
	topo, err := gridgraph.NewGraph(dims, sys)
	if err != nil {
		return nil, false, err
	}
	n := topo.NodeCount()

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	if err := g.AddVertex(msSourceID); err != nil {
		return nil, false, err
	}
	if err := g.AddVertex(msSinkID); err != nil {
		return nil, false, err
	}
	for v := 0; v < n; v++ {
		if labels[v] == alpha {
			continue
		}
		if err := g.AddVertex(msNodeID(v)); err != nil {
			return nil, false, err
		}
	}

	addEdge := func(from, to string, w float64) error {
		if w <= 0 {
			return nil
		}
		_, err := g.AddEdge(from, to, msScaleWeight(w))

		return err
	}

	auxCount := 0
	anyFree := false

	for v := 0; v < n; v++ {
		if labels[v] == alpha {
			continue
		}
		anyFree = true

		I := img.AtLinear(v)
		dAlpha := I - means[alpha]
		dStay := I - means[labels[v]]
		capSwitch := lambda[alpha] * dAlpha * dAlpha
		capStay := lambda[labels[v]] * dStay * dStay

		for i := 0; i < sys.Len(); i++ {
			nbr, ok := topo.Neighbour(v, i)
			if !ok {
				continue
			}
			w := sys.Offsets[i].Weight
			if w <= 0 {
				continue
			}

			if labels[nbr] == alpha {
				capStay += w
				continue
			}
			if nbr <= v {
				continue // the pair (v,nbr) is handled once, from the lower index
			}

			if labels[nbr] == labels[v] {
				if err := addEdge(msNodeID(v), msNodeID(nbr), w); err != nil {
					return nil, false, err
				}
				if err := addEdge(msNodeID(nbr), msNodeID(v), w); err != nil {
					return nil, false, err
				}
				continue
			}

			auxID := fmt.Sprintf("$aux%d", auxCount)
			auxCount++
			if err := g.AddVertex(auxID); err != nil {
				return nil, false, err
			}
			if err := addEdge(msNodeID(v), auxID, msInfCap); err != nil {
				return nil, false, err
			}
			if err := addEdge(msNodeID(nbr), auxID, msInfCap); err != nil {
				return nil, false, err
			}
			if err := addEdge(auxID, msSinkID, w); err != nil {
				return nil, false, err
			}
		}

		if err := addEdge(msSourceID, msNodeID(v), capSwitch); err != nil {
			return nil, false, err
		}
		if err := addEdge(msNodeID(v), msSinkID, capStay); err != nil {
			return nil, false, err
		}
	}

	if !anyFree {
		return labels, false, nil
	}

	_, residual, err := flow.Dinic(g, msSourceID, msSinkID, flow.DefaultOptions())
	if err != nil {
		return nil, false, err
	}
	reached := msReachableFrom(residual, msSourceID)

	newLabels := make([]int, n)
	copy(newLabels, labels)
	for v := 0; v < n; v++ {
		if labels[v] == alpha {
			continue
		}
		if !reached[msNodeID(v)] {
			newLabels[v] = alpha
		}
	}

	return newLabels, true, nil
}

// msReachableFrom runs a BFS over g's positive-weight edges from start,
// mirroring maxflow's reachableFrom but keyed by the string vertex IDs
// used here (grid nodes plus auxiliary expansion-move nodes) rather than
// parsed-back node indices.
func msReachableFrom(g *core.Graph, start string) map[string]bool {
	reached := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

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
			if e.Weight <= 0 || reached[v] {
				continue
			}
			reached[v] = true
			queue = append(queue, v)
		}
	}

	return reached
}
