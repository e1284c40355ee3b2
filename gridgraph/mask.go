package gridgraph

import "github.com/segcut/gridcut/ndarray"

// MaskValue classifies a grid node's relationship to the segmentation
// before max-flow runs.
type MaskValue uint8

const (
	// Unknown nodes get their own terminal excess and edge residuals and
	// participate in max-flow normally.
	Unknown MaskValue = 3
	// BackgroundFixed nodes are pinned to the background label; they
	// never enter the graph directly; see FoldFixedNeighbour.
	BackgroundFixed MaskValue = 1
	// ForegroundFixed nodes are pinned to the foreground label.
	ForegroundFixed MaskValue = 2
)

// Mask is an N-D field of MaskValue, one per grid node, using the same
// shape and row-major layout as the Graph it constrains.
type Mask struct {
	bytes *ndarray.ByteArray
}

// NewMask allocates a Mask of the given shape with every node Unknown.
func NewMask(dims ...int) (*Mask, error) {
	b, err := ndarray.NewByteArray(dims...)
	if err != nil {
		return nil, err
	}
	b.Fill(uint8(Unknown))

	return &Mask{bytes: b}, nil
}

// At returns the mask value at idx.
func (m *Mask) At(idx ...int) (MaskValue, error) {
	v, err := m.bytes.At(idx...)
	if err != nil {
		return Unknown, err
	}

	return MaskValue(v), nil
}

// Set assigns the mask value at idx.
func (m *Mask) Set(v MaskValue, idx ...int) error {
	return m.bytes.Set(uint8(v), idx...)
}

// AtLinear returns the mask value at a flat node index.
func (m *Mask) AtLinear(node int) MaskValue { return MaskValue(m.bytes.AtLinear(node)) }

// SetLinear assigns the mask value at a flat node index.
func (m *Mask) SetLinear(node int, v MaskValue) { m.bytes.SetLinear(node, uint8(v)) }

// Shape returns the mask's axis lengths.
func (m *Mask) Shape() []int { return m.bytes.Shape() }
