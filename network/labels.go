package network

import "fmt"

// Labels converts a solved flow into one cluster label per point.
//
// For point i the label is the cluster whose arc carries the largest flow;
// equal maxima resolve to the lowest cluster index. With integral unit supply
// exactly one arc carries flow, so the rule only matters for split flows.
//
// Errors:
//   - ErrFlowLength if flows does not have NumArcs entries.
//   - ErrUnassignedPoint (with the point index) if no arc of a point carries
//     positive flow.
//
// Complexity: O(N·k).
func (nw *Network) Labels(flows []int64) ([]int, error) {
	if len(flows) != len(nw.arcs) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFlowLength, len(flows), len(nw.arcs))
	}
	labels := make([]int, nw.n)
	for i := 0; i < nw.n; i++ {
		best, bestFlow := -1, int64(0)
		row := flows[i*nw.k : (i+1)*nw.k]
		for j, f := range row {
			if f > bestFlow {
				best, bestFlow = j, f
			}
		}
		if best < 0 {
			return nil, fmt.Errorf("%w: point %d", ErrUnassignedPoint, i)
		}
		labels[i] = best
	}

	return labels, nil
}
