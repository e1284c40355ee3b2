package maxflow

// NewSolver resolves a selector symbol to a concrete Solver.
//
// Grid-specialized back-ends (exact, float64 capacities):
//   - "GRD-KO"  Kohli-style dynamic Boykov-Kolmogorov (BKSolver)
//   - "GRD-PRF" FIFO push-relabel
//   - "GRD-PRH" highest-level-active push-relabel
//
// General-graph adapters (fall back to the core/flow packages, capacities
// quantized to fixed-point integers):
//   - "GEN-FF" Ford-Fulkerson
//   - "GEN-EK" Edmonds-Karp
//   - "GEN-DI" Dinic
//
// Recognized but unavailable, since no irregular-graph implementation of
// these exists in this module:
//   - "GEN-BK", "GEN-KO", "GEN-PRF", "GEN-PRH"
//
// Anything else returns ErrUnknownSelector.
func NewSolver(selector string) (Solver, error) {
	switch selector {
	case "GRD-KO":
		return NewBKSolver(), nil
	case "GRD-PRF":
		return NewPushRelabelFIFO(), nil
	case "GRD-PRH":
		return NewPushRelabelHighestLevel(), nil
	case "GEN-FF":
		return newGeneralAdapter(backendFordFulkerson), nil
	case "GEN-EK":
		return newGeneralAdapter(backendEdmondsKarp), nil
	case "GEN-DI":
		return newGeneralAdapter(backendDinic), nil
	case "GEN-BK", "GEN-KO", "GEN-PRF", "GEN-PRH":
		return nil, ErrGeneralBackendUnavailable
	default:
		return nil, ErrUnknownSelector
	}
}
