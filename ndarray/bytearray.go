package ndarray

// ByteArray is a dense N-D array of uint8 elements, used for label fields
// and masks. Labels are small unsigned integers: binary labels use {0,1};
// multi-label fields use values up to 254 (255 is reserved by no convention
// here, but callers constructing Mumford–Shah results keep k ≤ 254 per
// spec.md's k ∈ [2,254] validation).
type ByteArray struct {
	shape
	data []uint8
}

// NewByteArray allocates a zero-filled ByteArray of the given shape.
// Complexity: O(len) time and memory.
func NewByteArray(dims ...int) (*ByteArray, error) {
	s, err := newShape(dims)
	if err != nil {
		return nil, err
	}

	return &ByteArray{shape: s, data: make([]uint8, s.Len())}, nil
}

// ByteArrayFromSlice wraps a pre-populated flat row-major slice.
// Returns ErrShapeMismatch if len(data) != product(dims).
func ByteArrayFromSlice(data []uint8, dims ...int) (*ByteArray, error) {
	s, err := newShape(dims)
	if err != nil {
		return nil, err
	}
	if len(data) != s.Len() {
		return nil, ErrShapeMismatch
	}

	return &ByteArray{shape: s, data: data}, nil
}

// At retrieves the element at idx. Complexity: O(rank).
func (a *ByteArray) At(idx ...int) (uint8, error) {
	off, err := a.linear(idx)
	if err != nil {
		return 0, err
	}

	return a.data[off], nil
}

// Set assigns v at idx. Complexity: O(rank).
func (a *ByteArray) Set(v uint8, idx ...int) error {
	off, err := a.linear(idx)
	if err != nil {
		return err
	}
	a.data[off] = v

	return nil
}

// AtLinear retrieves the element at a precomputed flat offset. Complexity: O(1).
func (a *ByteArray) AtLinear(off int) uint8 { return a.data[off] }

// SetLinear assigns v at a precomputed flat offset. Complexity: O(1).
func (a *ByteArray) SetLinear(off int, v uint8) { a.data[off] = v }

// Linear converts an N-D index to a flat offset without a bounds check.
// Complexity: O(rank).
func (a *ByteArray) Linear(idx []int) int {
	off := 0
	for i, v := range idx {
		off += v * a.strides[i]
	}

	return off
}

// Coordinate converts a flat offset to an N-D index. Complexity: O(rank).
func (a *ByteArray) Coordinate(off int) []int { return a.coordinate(off) }

// Iterate calls fn once per element in row-major order with its flat offset.
// Complexity: O(len).
func (a *ByteArray) Iterate(fn func(off int, v uint8)) {
	for off, v := range a.data {
		fn(off, v)
	}
}

// Clone returns a deep copy. Complexity: O(len).
func (a *ByteArray) Clone() *ByteArray {
	cp := make([]uint8, len(a.data))
	copy(cp, a.data)

	return &ByteArray{shape: a.shape, data: cp}
}

// Raw exposes the backing flat slice for zero-copy bulk operations.
func (a *ByteArray) Raw() []uint8 { return a.data }

// Fill sets every element to v. Complexity: O(len).
func (a *ByteArray) Fill(v uint8) {
	for i := range a.data {
		a.data[i] = v
	}
}

// SameShape reports whether two byte arrays share identical dimensions.
func (a *ByteArray) SameShape(b *ByteArray) bool { return sameShape(a.shape, b.shape) }
