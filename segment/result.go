package segment

import (
	"github.com/segcut/gridcut/maxflow"
	"github.com/segcut/gridcut/ndarray"
)

// binaryLabelsToArray packs a flat []maxflow.Label (SourceSide/SinkSide,
// which are 0/1 by construction) into a LabelArray of the given shape.
func binaryLabelsToArray(dims []int, labels []maxflow.Label) (*ndarray.LabelArray, error) {
	out, err := ndarray.NewLabelArray(dims...)
	if err != nil {
		return nil, err
	}
	for v, lbl := range labels {
		out.SetLinear(v, uint8(lbl))
	}

	return out, nil
}
