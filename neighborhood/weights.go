package neighborhood

import "math"

// Cauchy–Crofton normalization constants from spec.md's formula
// w_i = (φ_i · (1/ρ_i)) / K_N, with the full-circle/full-sphere measure
// split across directions so that Σ φ_i/K_N = 1.
const (
	k2 = 2.0 // 2-D normalization constant
	k3 = math.Pi // 3-D normalization constant

	fullCircle = 2 * math.Pi // total angular measure partitioned in 2-D
	fullSphere = 4 * math.Pi // total solid-angle measure partitioned in 3-D
)

// assignWeights fills in Rho and Weight for every offset of a 2-D or 3-D
// direction set, using the angular (2-D) or sampled-spherical (3-D)
// Voronoi partition to derive each direction's measure share.
func assignWeights(rank int, dirs [][]float64, rho []float64, offsets []Offset) {
	var measure []float64
	if rank == 2 {
		measure = voronoiArcs2D(dirs)
	} else {
		measure = voronoiSolidAngles3D(dirs)
	}

	full, kN := fullCircle, k2
	if rank == 3 {
		full, kN = fullSphere, k3
	}

	for i := range offsets {
		phi := measure[i] / (full / kN)
		offsets[i].Rho = rho[i]
		offsets[i].Weight = (phi / rho[i]) / kN
	}
}

// voronoiArcs2D computes each direction's angular Voronoi arc on the unit
// circle: the arc is exactly half the sum of the angular gaps to its two
// circularly-nearest neighbours. Complexity: O(n log n).
func voronoiArcs2D(dirs [][]float64) []float64 {
	n := len(dirs)
	angles := make([]float64, n)
	for i, d := range dirs {
		angles[i] = math.Atan2(d[1], d[0])
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sortByAngle(order, angles)

	arcs := make([]float64, n)
	for k, idx := range order {
		prev := order[(k-1+n)%n]
		next := order[(k+1)%n]
		gapPrev := angularGap(angles[prev], angles[idx])
		gapNext := angularGap(angles[idx], angles[next])
		arcs[idx] = (gapPrev + gapNext) / 2
	}

	return arcs
}

func sortByAngle(order []int, angles []float64) {
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && angles[order[j-1]] > angles[order[j]]; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
}

// angularGap returns the positive circular distance from a to b.
func angularGap(a, b float64) float64 {
	d := b - a
	for d < 0 {
		d += fullCircle
	}
	for d >= fullCircle {
		d -= fullCircle
	}

	return d
}

// sphereSamples is the number of deterministic Fibonacci-lattice sample
// points used to approximate the 3-D hyperspherical Voronoi partition.
// spec.md §9 explicitly permits an area-preserving sampling approximation
// in place of an exact spherical Voronoi diagram.
const sphereSamples = 20000

// voronoiSolidAngles3D approximates each direction's solid-angle Voronoi
// share by scattering sphereSamples points over the unit sphere with a
// Fibonacci lattice (area-preserving, deterministic) and assigning each
// sample to its nearest direction by dot product.
// Complexity: O(sphereSamples * n).
func voronoiSolidAngles3D(dirs [][]float64) []float64 {
	n := len(dirs)
	counts := make([]float64, n)

	golden := math.Pi * (3 - math.Sqrt(5))
	for s := 0; s < sphereSamples; s++ {
		y := 1 - 2*float64(s)/float64(sphereSamples-1)
		radius := math.Sqrt(max0(1 - y*y))
		theta := golden * float64(s)
		x := math.Cos(theta) * radius
		z := math.Sin(theta) * radius

		best, bestDot := -1, math.Inf(-1)
		for i, d := range dirs {
			dot := x*d[0] + y*d[1] + z*d[2]
			if dot > bestDot {
				bestDot, best = dot, i
			}
		}
		counts[best]++
	}

	shares := make([]float64, n)
	for i, c := range counts {
		shares[i] = c / float64(sphereSamples) * fullSphere
	}

	return shares
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}

	return v
}
