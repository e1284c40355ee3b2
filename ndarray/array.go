package ndarray

// Array is a dense N-D array of float64 elements, used for images.
// It is immutable in shape once constructed; element values may be mutated
// in place via Set.
type Array struct {
	shape
	data []float64
}

// NewArray allocates a zero-filled Array of the given shape.
// Complexity: O(len) time and memory, len = product(dims).
func NewArray(dims ...int) (*Array, error) {
	s, err := newShape(dims)
	if err != nil {
		return nil, err
	}

	return &Array{shape: s, data: make([]float64, s.Len())}, nil
}

// FromSlice wraps a pre-populated flat row-major slice as an Array.
// Returns ErrShapeMismatch if len(data) != product(dims).
// Complexity: O(1) (the slice is taken by reference, not copied).
func FromSlice(data []float64, dims ...int) (*Array, error) {
	s, err := newShape(dims)
	if err != nil {
		return nil, err
	}
	if len(data) != s.Len() {
		return nil, ErrShapeMismatch
	}

	return &Array{shape: s, data: data}, nil
}

// At retrieves the element at idx. Complexity: O(rank).
func (a *Array) At(idx ...int) (float64, error) {
	off, err := a.linear(idx)
	if err != nil {
		return 0, err
	}

	return a.data[off], nil
}

// Set assigns v at idx. Complexity: O(rank).
func (a *Array) Set(v float64, idx ...int) error {
	off, err := a.linear(idx)
	if err != nil {
		return err
	}
	a.data[off] = v

	return nil
}

// AtLinear retrieves the element at a precomputed flat offset without bounds
// checking beyond a slice-index panic; callers iterating with Coordinate/
// Linear pairs own the responsibility of keeping offsets in range.
// Complexity: O(1).
func (a *Array) AtLinear(off int) float64 { return a.data[off] }

// SetLinear assigns v at a precomputed flat offset. Complexity: O(1).
func (a *Array) SetLinear(off int, v float64) { a.data[off] = v }

// Coordinate converts a flat offset to an N-D index. Complexity: O(rank).
func (a *Array) Coordinate(off int) []int { return a.coordinate(off) }

// Linear converts an N-D index to a flat offset without a bounds check;
// callers that already validated idx via InBounds use this on the hot path.
// Complexity: O(rank).
func (a *Array) Linear(idx []int) int {
	off := 0
	for i, v := range idx {
		off += v * a.strides[i]
	}

	return off
}

// Iterate calls fn once per element in row-major order with its flat offset.
// Complexity: O(len).
func (a *Array) Iterate(fn func(off int, v float64)) {
	for off, v := range a.data {
		fn(off, v)
	}
}

// Clone returns a deep copy of the array. Complexity: O(len).
func (a *Array) Clone() *Array {
	cp := make([]float64, len(a.data))
	copy(cp, a.data)

	return &Array{shape: a.shape, data: cp}
}

// Raw exposes the backing flat slice for zero-copy bulk operations performed
// by this module's own internal callers (neighborhood, gridgraph, segment).
// Complexity: O(1).
func (a *Array) Raw() []float64 { return a.data }

// SameShape reports whether two arrays share identical dimensions.
func (a *Array) SameShape(b *Array) bool { return sameShape(a.shape, b.shape) }
