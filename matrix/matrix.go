package matrix

// Matrix is a square or rectangular two-dimensional array of float64 values.
// Implementations enforce bounds checking and report errors rather than panic.
type Matrix interface {
	// Rows returns the number of rows. Complexity: O(1).
	Rows() int

	// Cols returns the number of columns. Complexity: O(1).
	Cols() int

	// At retrieves the element at (row, col).
	// Returns ErrIndexOutOfBounds on an invalid index. Complexity: O(1).
	At(row, col int) (float64, error)

	// Set assigns v at (row, col).
	// Returns ErrIndexOutOfBounds on an invalid index. Complexity: O(1).
	Set(row, col int, v float64) error

	// Clone returns a deep, independent copy. Complexity: O(Rows()*Cols()).
	Clone() Matrix
}
