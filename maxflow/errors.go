package maxflow

import "errors"

// Sentinel errors for maxflow construction and solving.
var (
	// ErrUnknownSelector is returned by NewSolver for any symbol outside
	// the fixed GRD-*/GEN-* set.
	ErrUnknownSelector = errors.New("maxflow: unknown max-flow selector")
	// ErrGeneralBackendUnavailable is returned for a recognized GEN-*
	// selector whose irregular-graph implementation is out of scope here.
	ErrGeneralBackendUnavailable = errors.New("maxflow: general-graph backend not available")
	// ErrNotInitialized is returned when Solver methods are called before Init.
	ErrNotInitialized = errors.New("maxflow: solver not initialized")
	// ErrInvariantViolation signals an internal programming bug (e.g. a
	// negative residual after augmentation, or an orphan with an
	// inconsistent tree label) rather than a caller error.
	ErrInvariantViolation = errors.New("maxflow: internal invariant violation")
)
