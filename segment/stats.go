package segment

import "github.com/segcut/gridcut/ndarray"

// regionMean returns the mean of img's elements for which sel(off) is
// true, and the count of elements selected. count == 0 signals a
// degenerate (empty) region to the caller.
func regionMean(img *ndarray.Array, sel func(off int) bool) (mean float64, count int) {
	var sum float64
	img.Iterate(func(off int, v float64) {
		if sel(off) {
			sum += v
			count++
		}
	})
	if count == 0 {
		return 0, 0
	}

	return sum / float64(count), count
}

// regionMeanVariance returns the mean and (biased, MLE) variance of img's
// elements for which sel(off) is true.
func regionMeanVariance(img *ndarray.Array, sel func(off int) bool) (mean, variance float64, count int) {
	mean, count = regionMean(img, sel)
	if count == 0 {
		return 0, 0, 0
	}

	var sqDiff float64
	img.Iterate(func(off int, v float64) {
		if sel(off) {
			d := v - mean
			sqDiff += d * d
		}
	})

	return mean, sqDiff / float64(count), count
}

// imageMinAvgMax returns the minimum, arithmetic mean, and maximum of
// img's elements; used by the Gibou–Fedkiw two-mean initializer.
func imageMinAvgMax(img *ndarray.Array) (min, avg, max float64) {
	raw := img.Raw()
	min, max = raw[0], raw[0]
	var sum float64
	for _, v := range raw {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	return min, sum / float64(len(raw)), max
}
