package maxflow

// Label identifies which side of the min-cut a node falls on once Compute
// has run: SourceSide nodes are { v : tree(v) != IN_SINK_TREE }.
type Label uint8

const (
	// SourceSide marks a node on the source side of the cut (foreground,
	// by this module's convention).
	SourceSide Label = iota
	// SinkSide marks a node on the sink side of the cut (background).
	SinkSide
)

// Solver is the capability set a segmentation driver programs against,
// independent of which back-end algorithm computes the cut.
type Solver interface {
	// Init allocates solver state for a grid of the given shape under
	// neighbourhood system sys. Must be called before any other method.
	Init(dims []int, sysSymbol string) error

	// SetTerminalCaps adds capSource to c_s(node) and capSink to
	// c_t(node).
	SetTerminalCaps(node int, capSource, capSink float64) error

	// SetEdgeCap sets the undirected edge capacity between node and its
	// neighbour in direction dir.
	SetEdgeCap(node, dir int, cap float64) error

	// SetInitialLabelling seeds tree membership before Compute, letting a
	// Kohli-style dynamic solver reuse state from the previous outer
	// iteration. Implementations that do not support warm starts may
	// treat this as a no-op.
	SetInitialLabelling(labels []Label) error

	// Compute runs the solver to completion and returns the max-flow
	// value.
	Compute() (float64, error)

	// LabelOf returns the min-cut side of node after Compute has run.
	LabelOf(node int) Label
}
