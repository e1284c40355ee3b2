package gridgraph

import "errors"

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyShape indicates a grid with no axes was requested.
	ErrEmptyShape = errors.New("gridgraph: shape must have at least one axis")
	// ErrRankMismatch indicates a neighbourhood system whose rank does not
	// match the requested grid's rank.
	ErrRankMismatch = errors.New("gridgraph: neighbourhood rank does not match grid rank")
	// ErrNodeOutOfRange indicates a node index outside [0, N).
	ErrNodeOutOfRange = errors.New("gridgraph: node index out of range")
	// ErrDirectionOutOfRange indicates a direction index outside the
	// neighbourhood system's range.
	ErrDirectionOutOfRange = errors.New("gridgraph: direction index out of range")
	// ErrMaskShapeMismatch indicates a mask whose shape differs from the graph's.
	ErrMaskShapeMismatch = errors.New("gridgraph: mask shape does not match grid shape")
	// ErrNegativeCapacity indicates a negative terminal or edge capacity was supplied.
	ErrNegativeCapacity = errors.New("gridgraph: capacity must be >= 0")
)
