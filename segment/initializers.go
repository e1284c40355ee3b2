package segment

import (
	"math"

	"github.com/segcut/gridcut/ndarray"
)

// Gibou–Fedkiw two-mean initializer bounds (spec.md §4.3/§4.5: "50-iteration
// Gibou–Fedkiw two-mean"). gibouFedkiwConv has no caller-visible knob; it only gates
// this inner initializer, not the driver's own convergence parameter.
const (
	gibouFedkiwMaxIter = 50
	gibouFedkiwConv    = 1e-6
)

// gibouFedkiwTwoMean implements spec.md §4.3's initializer: c1 =
// (min+avg)/2, c2 = (avg+max)/2, then iterate the residual-indicator
// reclassification R = -λ1(I-c1)² + λ2(I-c2)² until |Δc1|+|Δc2| < gibouFedkiwConv or
// gibouFedkiwMaxIter is reached.
func gibouFedkiwTwoMean(img *ndarray.Array, lambda1, lambda2 float64) (c1, c2 float64) {
	min, avg, max := imageMinAvgMax(img)
	c1 = (min + avg) / 2
	c2 = (avg + max) / 2

	raw := img.Raw()
	for iter := 0; iter < gibouFedkiwMaxIter; iter++ {
		var sum1, sum2 float64
		var n1, n2 int
		for _, v := range raw {
			r := -lambda1*(v-c1)*(v-c1) + lambda2*(v-c2)*(v-c2)
			if r >= 0 {
				sum1 += v
				n1++
			} else {
				sum2 += v
				n2++
			}
		}

		newC1, newC2 := c1, c2
		if n1 > 0 {
			newC1 = sum1 / float64(n1)
		}
		if n2 > 0 {
			newC2 = sum2 / float64(n2)
		}

		delta := math.Abs(newC1-c1) + math.Abs(newC2-c2)
		c1, c2 = newC1, newC2
		if delta < gibouFedkiwConv {
			break
		}
	}

	return c1, c2
}

// gibouFedkiwInitWithVariance extends gibouFedkiwTwoMean to per-region
// variance for the Rousson–Deriche initial estimate (spec.md §4.5): a
// plain (unweighted) two-mean partition followed by one pass computing
// each side's sample variance.
func gibouFedkiwInitWithVariance(img *ndarray.Array) (c1, sigma1Sq, c2, sigma2Sq float64) {
	c1, c2 = gibouFedkiwTwoMean(img, 1, 1)

	raw := img.Raw()
	closerToC1 := func(off int) bool {
		v := raw[off]
		d1, d2 := v-c1, v-c2

		return d1*d1 <= d2*d2
	}

	m1, v1, n1 := regionMeanVariance(img, closerToC1)
	m2, v2, n2 := regionMeanVariance(img, func(off int) bool { return !closerToC1(off) })
	if n1 > 0 {
		c1, sigma1Sq = m1, v1
	}
	if n2 > 0 {
		c2, sigma2Sq = m2, v2
	}
	if sigma1Sq <= 0 {
		sigma1Sq = minVariance
	}
	if sigma2Sq <= 0 {
		sigma2Sq = minVariance
	}

	return c1, sigma1Sq, c2, sigma2Sq
}

// minVariance floors a region's variance estimate so the Rousson–Deriche
// unary term 1/(2σ²) never divides by zero on a constant-intensity region.
const minVariance = 1e-9

// lloyd1DMaxIter bounds the Mumford–Shah initializer (spec.md §4.4:
// "Lloyd k-means on the 1D intensity distribution with up to 50
// iterations").
const lloyd1DMaxIter = 50

// lloyd1D runs weighted 1-D Lloyd k-means: k centroids initialized evenly
// across [min,max], each pixel assigned to its nearest (λ-weighted)
// centroid, centroids re-estimated as the class mean, repeated until no
// assignment changes or lloyd1DMaxIter is reached. lambda is nil for
// unweighted Lloyd (ordinary nearest-centroid) or length k for per-class
// weights.
func lloyd1D(img *ndarray.Array, k int, lambda []float64) []float64 {
	min, _, max := imageMinAvgMax(img)
	means := make([]float64, k)
	if max <= min {
		for i := range means {
			means[i] = min
		}

		return means
	}
	for i := 0; i < k; i++ {
		means[i] = min + (max-min)*(float64(i)+0.5)/float64(k)
	}

	raw := img.Raw()
	assign := make([]int, len(raw))

	for iter := 0; iter < lloyd1DMaxIter; iter++ {
		changed := false
		for off, v := range raw {
			best, bestCost := 0, math.Inf(1)
			for c := 0; c < k; c++ {
				d := v - means[c]
				cost := d * d
				if lambda != nil {
					cost *= lambda[c]
				}
				if cost < bestCost {
					bestCost, best = cost, c
				}
			}
			if assign[off] != best {
				assign[off] = best
				changed = true
			}
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for off, v := range raw {
			sums[assign[off]] += v
			counts[assign[off]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				means[c] = sums[c] / float64(counts[c])
			}
		}

		if !changed {
			break
		}
	}

	return means
}
