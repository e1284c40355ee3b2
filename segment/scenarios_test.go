package segment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/segcut/gridcut/gridgraph"
	"github.com/segcut/gridcut/ndarray"
	"github.com/segcut/gridcut/segment"
)

// ScenarioSuite runs the literal end-to-end scenarios (spec.md §8).
type ScenarioSuite struct {
	suite.Suite
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

// TestS1LeftRightSplit: 4x4 image, I={0,1} split left/right halves,
// lambda1=lambda2=10, mu=1, N4 -> exact ground-truth split, c1->0, c2->1,
// within 3 iterations.
func (s *ScenarioSuite) TestS1LeftRightSplit() {
	require := require.New(s.T())

	const n = 4
	data := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if c >= n/2 {
				data[r*n+c] = 1
			}
		}
	}
	img, err := ndarray.FromSlice(data, n, n)
	require.NoError(err)

	res, err := segment.ChanVese(img, nil, segment.ChanVeseOptions{
		Lambda1: 10, Lambda2: 10, Mu: 1, MaxIter: 10, Convergence: 1e-6, Neighbourhood: "N4",
	})
	require.NoError(err)
	require.Equal(segment.Converged, res.Status)
	require.LessOrEqual(res.Iterations, 3)
	require.InDelta(0, res.C1, 1e-3)
	require.InDelta(1, res.C2, 1e-3)

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			lbl, lerr := res.Labels.At(r, c)
			require.NoError(lerr)
			want := uint8(0)
			if c >= n/2 {
				want = 1
			}
			require.Equalf(want, lbl, "row %d col %d", r, c)
		}
	}
}

// gaussianBlob16 builds a 16x16 field I(x,y) = exp(-((x-cx)^2+(y-cy)^2)/(2*sigma^2))
// centered at (8,8) with sigma=3, per spec.md S3.
func gaussianBlob16(t *testing.T) *ndarray.Array {
	t.Helper()

	const n = 16
	const cx, cy, sigma = 8.0, 8.0, 3.0
	data := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			dx, dy := float64(r)-cx, float64(c)-cy
			data[r*n+c] = math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
		}
	}

	img, err := ndarray.FromSlice(data, n, n)
	require.NoError(t, err)

	return img
}

// TestS3GaussianBlob: 16x16 Gaussian blob centered at (8,8), sigma=3,
// lambda=10, mu=1, N8 -> the centre pixel labels foreground and all four
// corners label background.
func (s *ScenarioSuite) TestS3GaussianBlob() {
	require := require.New(s.T())

	img := gaussianBlob16(s.T())
	res, err := segment.ChanVese(img, nil, segment.ChanVeseOptions{
		Lambda1: 10, Lambda2: 10, Mu: 1, MaxIter: 30, Convergence: 1e-6, Neighbourhood: "N8",
	})
	require.NoError(err)

	center, cerr := res.Labels.At(8, 8)
	require.NoError(cerr)
	require.Equal(uint8(1), center, "centre pixel must be foreground")

	corners := [][2]int{{0, 0}, {0, 15}, {15, 0}, {15, 15}}
	for _, xy := range corners {
		lbl, lerr := res.Labels.At(xy[0], xy[1])
		require.NoError(lerr)
		require.Equalf(uint8(0), lbl, "corner (%d,%d) must be background", xy[0], xy[1])
	}
}

// TestS5SingleVoxel: 4x4x4 volume with a single foreground voxel at
// (2,2,2) surrounded by background, N6, lambda large vs mu small ->
// recovered foreground region is exactly that voxel.
func (s *ScenarioSuite) TestS5SingleVoxel() {
	require := require.New(s.T())

	const n = 4
	data := make([]float64, n*n*n)
	idx := func(x, y, z int) int { return (x*n+y)*n + z }
	data[idx(2, 2, 2)] = 1

	img, err := ndarray.FromSlice(data, n, n, n)
	require.NoError(err)

	res, err := segment.ChanVese(img, nil, segment.ChanVeseOptions{
		Lambda1: 100, Lambda2: 100, Mu: 1e-3, MaxIter: 20, Convergence: 1e-9, Neighbourhood: "N6",
	})
	require.NoError(err)

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				lbl, lerr := res.Labels.At(x, y, z)
				require.NoError(lerr)
				want := uint8(0)
				if x == 2 && y == 2 && z == 2 {
					want = 1
				}
				require.Equalf(want, lbl, "voxel (%d,%d,%d)", x, y, z)
			}
		}
	}
}

// TestS6MaskBoundaryExactness: 16x16 image, lambda=10, N4, left column
// masked BackgroundFixed and right column masked ForegroundFixed -> the
// cut lies strictly between the masked columns and the interior UNKNOWN
// region matches the unmasked run exactly.
func (s *ScenarioSuite) TestS6MaskBoundaryExactness() {
	require := require.New(s.T())

	const n = 16
	data := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if c >= n/2 {
				data[r*n+c] = 1
			}
		}
	}
	img, err := ndarray.FromSlice(data, n, n)
	require.NoError(err)

	opts := segment.ChanVeseOptions{
		Lambda1: 10, Lambda2: 10, Mu: 1, MaxIter: 30, Convergence: 1e-6, Neighbourhood: "N4",
	}

	unmasked, err := segment.ChanVese(img, nil, opts)
	require.NoError(err)

	mask, merr := gridgraph.NewMask(n, n)
	require.NoError(merr)
	for r := 0; r < n; r++ {
		require.NoError(mask.Set(gridgraph.BackgroundFixed, r, 0))
		require.NoError(mask.Set(gridgraph.ForegroundFixed, r, n-1))
	}

	maskedOpts := opts
	maskedOpts.Mask = mask
	masked, err := segment.ChanVese(img, nil, maskedOpts)
	require.NoError(err)

	// Fixed columns hold their pinned value.
	for r := 0; r < n; r++ {
		lbl0, lerr := masked.Labels.At(r, 0)
		require.NoError(lerr)
		require.Equal(uint8(0), lbl0)

		lblN, lerr := masked.Labels.At(r, n-1)
		require.NoError(lerr)
		require.Equal(uint8(1), lblN)
	}

	// The interior UNKNOWN region (columns 1..n-2) matches the unmasked run.
	for r := 0; r < n; r++ {
		for c := 1; c < n-1; c++ {
			a, aerr := unmasked.Labels.At(r, c)
			require.NoError(aerr)
			b, berr := masked.Labels.At(r, c)
			require.NoError(berr)
			require.Equalf(a, b, "row %d col %d", r, c)
		}
	}

	// The cut lies strictly between columns 7 and 8, the intensity
	// boundary for this left/right split image.
	for r := 0; r < n; r++ {
		left, lerr := masked.Labels.At(r, n/2-1)
		require.NoError(lerr)
		right, rerr := masked.Labels.At(r, n/2)
		require.NoError(rerr)
		require.Equal(uint8(0), left)
		require.Equal(uint8(1), right)
	}
}
