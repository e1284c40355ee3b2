package segment

import (
	"math"

	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/maxflow"
	"github.com/segcut/gridcut/ndarray"
	"github.com/segcut/gridcut/neighborhood"
)

// ChanVeseOptions configures the two-phase driver (spec.md §4.3).
type ChanVeseOptions struct {
	Lambda1, Lambda2 float64
	// Mu scales the pairwise (boundary-length) term; defaults to 1 when 0.
	Mu          float64
	Convergence float64
	MaxIter     int
	// Neighbourhood names the grid direction system ("N4","N8",... in 2-D,
	// "N6","N18",... in 3-D).
	Neighbourhood string
	// C1Seed/C2Seed optionally override the Gibou–Fedkiw initializer; both
	// must be supplied together, with *C1Seed < *C2Seed.
	C1Seed, C2Seed *float64
	// Mask optionally pins nodes to BackgroundFixed/ForegroundFixed.
	Mask *gridgraph.Mask
	// MaxFlowSelector names the max-flow back-end ("GRD-KO" by default).
	MaxFlowSelector string

	// TwoStage runs a second pass restricted to a band around the first
	// pass's boundary, under DenseNeighbourhood, per spec.md §4.3's
	// two-stage variant.
	TwoStage bool
	// BandRadius is the cityblock band half-width for the second stage;
	// defaults to 2 when TwoStage is set and BandRadius <= 0.
	BandRadius int
	// DenseNeighbourhood names the second stage's (denser) system;
	// defaults to Neighbourhood when empty.
	DenseNeighbourhood string
}

// ChanVeseResult is the driver's output (spec.md §6's invocation contract).
type ChanVeseResult struct {
	Labels     *ndarray.LabelArray // 0 = Ω (c1 region), 1 = Ω^c (c2 region)
	Energy     float64
	Iterations int
	C1, C2     float64
	Status     Status
}

// ChanVese minimizes E(Ω,c1,c2) = λ1∫_Ω(I-c1)² + λ2∫_Ωᶜ(I-c2)² +
// μ·Perimeter(∂Ω) by the fixed-point loop of spec.md §4.3: one min-cut per
// outer iteration with (c1,c2) held fixed, then re-estimate (c1,c2) from
// the cut.
func ChanVese(img *ndarray.Array, spacing []float64, opts ChanVeseOptions) (ChanVeseResult, error) {
	if err := validateLambda(opts.Lambda1); err != nil {
		return ChanVeseResult{}, err
	}
	if err := validateLambda(opts.Lambda2); err != nil {
		return ChanVeseResult{}, err
	}
	if err := validateMaxIter(opts.MaxIter); err != nil {
		return ChanVeseResult{}, err
	}
	if err := validateConvergence(opts.Convergence); err != nil {
		return ChanVeseResult{}, err
	}
	if err := validateSeeds(opts.C1Seed, opts.C2Seed); err != nil {
		return ChanVeseResult{}, err
	}
	if err := validateMask(img, opts.Mask); err != nil {
		return ChanVeseResult{}, err
	}

	dims := img.Shape()
	sys, err := resolveSystem(opts.Neighbourhood, spacing)
	if err != nil {
		return ChanVeseResult{}, err
	}

	mu := opts.Mu
	if mu == 0 {
		mu = 1
	}

	var c1, c2 float64
	if opts.C1Seed != nil && opts.C2Seed != nil {
		c1, c2 = *opts.C1Seed, *opts.C2Seed
	} else {
		c1, c2 = gibouFedkiwTwoMean(img, opts.Lambda1, opts.Lambda2)
	}

	labels, c1, c2, iterations, status, err := chanVeseIterate(
		img, dims, sys, mu, opts.Lambda1, opts.Lambda2, c1, c2,
		opts.Convergence, opts.MaxIter, opts.Mask, opts.MaxFlowSelector)
	if err != nil && !isSoftErr(err) {
		return ChanVeseResult{}, err
	}
	softErr := err

	if opts.TwoStage && softErr == nil {
		dist, derr := cityblockDistanceToBoundary(dims, labels)
		if derr != nil {
			return ChanVeseResult{}, derr
		}
		radius := opts.BandRadius
		if radius <= 0 {
			radius = 2
		}
		bm, berr := bandMask(dims, labels, dist, radius, opts.Mask)
		if berr != nil {
			return ChanVeseResult{}, berr
		}

		denseSym := opts.DenseNeighbourhood
		if denseSym == "" {
			denseSym = opts.Neighbourhood
		}
		denseSys, derr2 := resolveSystem(denseSym, spacing)
		if derr2 != nil {
			return ChanVeseResult{}, derr2
		}

		labels2, c1b, c2b, iters2, status2, err2 := chanVeseIterate(
			img, dims, denseSys, mu, opts.Lambda1, opts.Lambda2, c1, c2,
			opts.Convergence, opts.MaxIter, bm, opts.MaxFlowSelector)
		if err2 != nil && !isSoftErr(err2) {
			return ChanVeseResult{}, err2
		}
		labels, c1, c2 = labels2, c1b, c2b
		iterations += iters2
		status = status2
		softErr = err2
		sys = denseSys
	}

	boundary, eerr := pairwiseBoundaryEnergy(dims, sys, len(labels), func(u, v int) bool { return labels[u] == labels[v] })
	if eerr != nil {
		return ChanVeseResult{}, eerr
	}
	energy := chanVeseDataEnergy(img, labels, opts.Lambda1, opts.Lambda2, c1, c2) + mu*boundary

	arr, aerr := binaryLabelsToArray(dims, labels)
	if aerr != nil {
		return ChanVeseResult{}, aerr
	}

	result := ChanVeseResult{Labels: arr, Energy: energy, Iterations: iterations, C1: c1, C2: c2, Status: status}
	if softErr != nil {
		return result, softErr
	}

	return result, nil
}

// chanVeseIterate runs the outer fixed-point loop for one neighbourhood
// system and mask, starting from (c1,c2), returning the final labelling,
// means, iteration count, status, and a non-nil error for a hard
// max-flow/graph failure, ErrDegenerate (an empty region after
// re-estimation), or ErrConvergence (max_iter reached without meeting the
// threshold).
func chanVeseIterate(img *ndarray.Array, dims []int, sys *neighborhood.System, mu, lambda1, lambda2, c1, c2, convergence float64, maxIter int, mask *gridgraph.Mask, selector string) (labels []maxflow.Label, finalC1, finalC2 float64, iterations int, status Status, err error) {
	n := 1
	for _, d := range dims {
		n *= d
	}

	status = MaxIterReached
	for iter := 1; iter <= maxIter; iter++ {
		capSource := make([]float64, n)
		capSink := make([]float64, n)
		for v := 0; v < n; v++ {
			I := img.AtLinear(v)
			d1, d2 := I-c1, I-c2
			capSource[v] = lambda2 * d2 * d2 // cost of label 1 (Ωᶜ, c2)
			capSink[v] = lambda1 * d1 * d1   // cost of label 0 (Ω, c1)
		}

		lbls, _, cutErr := binaryMinCut(dims, sys, mu, capSource, capSink, mask, selector)
		if cutErr != nil {
			return nil, c1, c2, iter - 1, status, cutErr
		}
		labels = lbls

		newC1, n1 := regionMean(img, func(off int) bool { return labels[off] == maxflow.SourceSide })
		newC2, n2 := regionMean(img, func(off int) bool { return labels[off] == maxflow.SinkSide })
		if n1 == 0 || n2 == 0 {
			return labels, c1, c2, iter, status, ErrDegenerate
		}

		delta := math.Abs(newC1-c1) + math.Abs(newC2-c2)
		c1, c2 = newC1, newC2
		iterations = iter
		if delta <= convergence {
			status = Converged
			break
		}
	}

	if status == MaxIterReached {
		return labels, c1, c2, iterations, status, ErrConvergence
	}

	return labels, c1, c2, iterations, status, nil
}

// chanVeseDataEnergy computes the λ1∫_Ω(I-c1)² + λ2∫_Ωᶜ(I-c2)² term.
func chanVeseDataEnergy(img *ndarray.Array, labels []maxflow.Label, lambda1, lambda2, c1, c2 float64) float64 {
	var total float64
	img.Iterate(func(off int, v float64) {
		if labels[off] == maxflow.SourceSide {
			d := v - c1
			total += lambda1 * d * d
		} else {
			d := v - c2
			total += lambda2 * d * d
		}
	})

	return total
}
