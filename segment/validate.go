package segment

import (
	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/ndarray"
)

// validateLambda checks a single λ > 0.
func validateLambda(lambda float64) error {
	if lambda <= 0 {
		return ErrInvalidLambda
	}

	return nil
}

// validateLambdas checks every per-class λ > 0.
func validateLambdas(lambdas []float64) error {
	for _, l := range lambdas {
		if l <= 0 {
			return ErrInvalidLambda
		}
	}

	return nil
}

// validateMaxIter checks max_iter > 0.
func validateMaxIter(maxIter int) error {
	if maxIter <= 0 {
		return ErrInvalidMaxIter
	}

	return nil
}

// validateConvergence checks convergence >= 0.
func validateConvergence(conv float64) error {
	if conv < 0 {
		return ErrInvalidConvergence
	}

	return nil
}

// validateK checks k in (1,255), i.e. 2 <= k <= 254.
func validateK(k int) error {
	if k <= 1 || k >= 255 {
		return ErrInvalidK
	}

	return nil
}

// validateMask checks that mask, if non-nil, shares img's shape.
func validateMask(img *ndarray.Array, mask *gridgraph.Mask) error {
	if mask == nil {
		return nil
	}
	ishape := img.Shape()
	mshape := mask.Shape()
	if len(ishape) != len(mshape) {
		return ErrMaskShapeMismatch
	}
	for i := range ishape {
		if ishape[i] != mshape[i] {
			return ErrMaskShapeMismatch
		}
	}

	return nil
}

// validateSeeds checks c1 < c2 when both are supplied (non-nil).
func validateSeeds(c1, c2 *float64) error {
	if c1 != nil && c2 != nil && *c1 >= *c2 {
		return ErrSeedOrder
	}

	return nil
}
