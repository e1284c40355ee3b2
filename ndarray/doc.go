// Package ndarray provides a small N-dimensional dense array used as the
// storage for images, label fields, and masks throughout gridcut.
//
// What:
//
//   - Array stores float64 elements in a flat, row-major (C-order) slice
//     with a shape and precomputed strides.
//   - ByteArray and LabelArray are the uint8 analogues used for mask fields
//     (gridgraph.Mask wraps a ByteArray) and label fields respectively.
//   - Bounded neighbor indexing (InBounds, Linear) is the one operation every
//     consumer in gridgraph/neighborhood/segment needs and that a generic
//     slice cannot provide in O(1).
//
// Why:
//
//   - One shape/strides/iteration implementation shared by 2-D and 3-D
//     callers avoids duplicating index arithmetic per dimensionality.
//
// Axis order is row-major with the last axis varying fastest (shape[0] is
// the slowest-varying axis); this must stay consistent between an Array and
// any neighborhood.System built against the same rank, since a System's
// Offset.Delta indexes axes positionally.
package ndarray
