package gridgraph

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithEpsilon sets the threshold below which a capacity is treated as
// exactly zero (default 1e-9).
func WithEpsilon(eps float64) GraphOption {
	return func(g *Graph) { g.epsilon = eps }
}

// WithMask attaches a Mask constraining which nodes are Unknown versus
// fixed to a terminal label. m must share the graph's shape.
func WithMask(m *Mask) GraphOption {
	return func(g *Graph) { g.mask = m }
}

func defaultEpsilon() float64 { return 1e-9 }
