package ndarray

import "errors"

// Sentinel errors for ndarray operations.
var (
	// ErrEmptyShape indicates a shape with no axes was supplied.
	ErrEmptyShape = errors.New("ndarray: shape must have at least one axis")

	// ErrBadAxisLength indicates an axis length that is not strictly positive.
	ErrBadAxisLength = errors.New("ndarray: axis length must be > 0")

	// ErrUnsupportedRank indicates a rank outside the {2, 3} this module supports.
	ErrUnsupportedRank = errors.New("ndarray: only 2-D and 3-D arrays are supported")

	// ErrIndexOutOfBounds indicates an index slice outside the array's shape.
	ErrIndexOutOfBounds = errors.New("ndarray: index out of bounds")

	// ErrRankMismatch indicates an index slice whose length differs from the array's rank.
	ErrRankMismatch = errors.New("ndarray: index rank does not match array rank")

	// ErrShapeMismatch indicates two arrays (or an array and an index/offset) disagree on shape.
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")
)
