package neighborhood

// Offset is one direction in a neighbourhood System: an integer
// displacement vector together with its derived Cauchy–Crofton weight.
type Offset struct {
	Delta  []int   // displacement vector, length == System.Rank
	Rho    float64 // Euclidean length of Delta (or of M·Delta under a Riemannian metric)
	Weight float64 // Cauchy-Crofton edge weight w_i
}

// System is an ordered, negation-closed set of directions for a given
// rank (2 or 3). Direction indices are stable across calls to Lookup with
// the same symbol, which lets gridgraph store parent links as direction
// indices rather than pointers. Index i and i^1 are negations of each
// other by construction.
type System struct {
	Symbol  string
	Rank    int
	Offsets []Offset
}

// Len returns the number of directions in the system.
func (s *System) Len() int { return len(s.Offsets) }

// Opposite returns the index of the direction opposite to i.
// Complexity: O(1).
func (s *System) Opposite(i int) int { return i ^ 1 }
