package segment

import (
	"math"

	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/maxflow"
	"github.com/segcut/gridcut/ndarray"
	"github.com/segcut/gridcut/neighborhood"
)

// RoussonDericheOptions configures the variance-aware two-phase driver
// (spec.md §4.5). Unlike Chan–Vese, Lambda scales only the pairwise
// (boundary) term; the unary term carries no λ of its own, since each
// region's own variance already weighs its data cost.
type RoussonDericheOptions struct {
	Lambda      float64
	Convergence float64
	MaxIter     int
	// Neighbourhood names the grid direction system, as ChanVeseOptions.
	Neighbourhood string
	// Mask optionally pins nodes to BackgroundFixed/ForegroundFixed, as
	// for Chan–Vese (spec.md §4.5 is otherwise "as §4.3").
	Mask            *gridgraph.Mask
	MaxFlowSelector string
}

// RoussonDericheResult is the driver's output (spec.md §6's invocation
// contract).
type RoussonDericheResult struct {
	Labels       *ndarray.LabelArray // 0 = Ω (c1 region), 1 = Ω^c (c2 region)
	Energy       float64
	Iterations   int
	C1, Sigma1Sq float64
	C2, Sigma2Sq float64
	Status       Status
}

// RoussonDeriche minimizes the per-region Gaussian unary energy
// u_ℓ(v) = (I(v)-c_ℓ)²/(2σ_ℓ²) + ½log(σ_ℓ²) plus λ·Perimeter(∂Ω) (spec.md
// §4.5), by the same fixed-point loop as ChanVese: one min-cut per outer
// iteration with (c1,σ1²,c2,σ2²) held fixed, then a per-region MLE
// re-estimate of mean and variance from the cut.
func RoussonDeriche(img *ndarray.Array, spacing []float64, opts RoussonDericheOptions) (RoussonDericheResult, error) {
	if err := validateLambda(opts.Lambda); err != nil {
		return RoussonDericheResult{}, err
	}
	if err := validateMaxIter(opts.MaxIter); err != nil {
		return RoussonDericheResult{}, err
	}
	if err := validateConvergence(opts.Convergence); err != nil {
		return RoussonDericheResult{}, err
	}
	if err := validateMask(img, opts.Mask); err != nil {
		return RoussonDericheResult{}, err
	}

	dims := img.Shape()
	sys, err := resolveSystem(opts.Neighbourhood, spacing)
	if err != nil {
		return RoussonDericheResult{}, err
	}

	c1, sigma1Sq, c2, sigma2Sq := gibouFedkiwInitWithVariance(img)

	labels, c1, sigma1Sq, c2, sigma2Sq, iterations, status, err := roussonDericheIterate(
		img, dims, sys, opts.Lambda, c1, sigma1Sq, c2, sigma2Sq,
		opts.Convergence, opts.MaxIter, opts.Mask, opts.MaxFlowSelector)
	if err != nil && !isSoftErr(err) {
		return RoussonDericheResult{}, err
	}
	softErr := err

	boundary, eerr := pairwiseBoundaryEnergy(dims, sys, len(labels), func(u, v int) bool { return labels[u] == labels[v] })
	if eerr != nil {
		return RoussonDericheResult{}, eerr
	}
	energy := roussonDericheDataEnergy(img, labels, c1, sigma1Sq, c2, sigma2Sq) + opts.Lambda*boundary

	arr, aerr := binaryLabelsToArray(dims, labels)
	if aerr != nil {
		return RoussonDericheResult{}, aerr
	}

	result := RoussonDericheResult{
		Labels: arr, Energy: energy, Iterations: iterations,
		C1: c1, Sigma1Sq: sigma1Sq, C2: c2, Sigma2Sq: sigma2Sq, Status: status,
	}
	if softErr != nil {
		return result, softErr
	}

	return result, nil
}

// roussonDericheIterate runs the outer fixed-point loop: build t-link
// capacities from the current (c1,σ1²,c2,σ2²), cut, then re-estimate each
// side's mean and variance via the region's sample statistics.
func roussonDericheIterate(img *ndarray.Array, dims []int, sys *neighborhood.System, lambda, c1, sigma1Sq, c2, sigma2Sq, convergence float64, maxIter int, mask *gridgraph.Mask, selector string) (labels []maxflow.Label, finalC1, finalSigma1Sq, finalC2, finalSigma2Sq float64, iterations int, status Status, err error) {
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
			capSource[v] = d2*d2/(2*sigma2Sq) + 0.5*math.Log(sigma2Sq) // cost of label 1 (Ωᶜ, c2)
			capSink[v] = d1*d1/(2*sigma1Sq) + 0.5*math.Log(sigma1Sq)   // cost of label 0 (Ω, c1)
			// ½log σ² is negative for σ² < 1; subtracting the smaller cost
			// from both keeps the cut unchanged and the capacities >= 0.
			low := math.Min(capSource[v], capSink[v])
			capSource[v] -= low
			capSink[v] -= low
		}

		lbls, _, cutErr := binaryMinCut(dims, sys, lambda, capSource, capSink, mask, selector)
		if cutErr != nil {
			return nil, c1, sigma1Sq, c2, sigma2Sq, iter - 1, status, cutErr
		}
		labels = lbls

		newC1, newSigma1Sq, n1 := regionMeanVariance(img, func(off int) bool { return labels[off] == maxflow.SourceSide })
		newC2, newSigma2Sq, n2 := regionMeanVariance(img, func(off int) bool { return labels[off] == maxflow.SinkSide })
		if n1 == 0 || n2 == 0 {
			return labels, c1, sigma1Sq, c2, sigma2Sq, iter, status, ErrDegenerate
		}
		if newSigma1Sq <= 0 {
			newSigma1Sq = minVariance
		}
		if newSigma2Sq <= 0 {
			newSigma2Sq = minVariance
		}

		delta := math.Abs(newC1-c1) + math.Abs(newC2-c2)
		c1, c2, sigma1Sq, sigma2Sq = newC1, newC2, newSigma1Sq, newSigma2Sq
		iterations = iter
		if delta <= convergence {
			status = Converged
			break
		}
	}

	if status == MaxIterReached {
		return labels, c1, sigma1Sq, c2, sigma2Sq, iterations, status, ErrConvergence
	}

	return labels, c1, sigma1Sq, c2, sigma2Sq, iterations, status, nil
}

// roussonDericheDataEnergy computes Σ_v u_{L(v)}(v), the Gaussian
// negative-log-likelihood unary term of spec.md §4.5.
func roussonDericheDataEnergy(img *ndarray.Array, labels []maxflow.Label, c1, sigma1Sq, c2, sigma2Sq float64) float64 {
	var total float64
	img.Iterate(func(off int, v float64) {
		if labels[off] == maxflow.SourceSide {
			d := v - c1
			total += d*d/(2*sigma1Sq) + 0.5*math.Log(sigma1Sq)
		} else {
			d := v - c2
			total += d*d/(2*sigma2Sq) + 0.5*math.Log(sigma2Sq)
		}
	})

	return total
}
