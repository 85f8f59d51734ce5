package flow

import (
	"fmt"

	"go.uber.org/zap"
)

// MinCostFlow computes a minimum-cost flow on nw that meets every node demand
// exactly.
//
// It returns:
//   - res: per-arc flows (indexed like nw.Arc), total cost, phase and
//     augmentation counters.
//   - err: ErrNilNetwork, ArcError, ErrInfeasible (wrapped with detail) or
//     ErrCostOverflow.
//
// Steps:
//  1. Validate nw and build the residual network with a super-source feeding
//     supply nodes and a super-sink draining demand nodes.
//  2. Start with zero potentials (all costs are non-negative).
//  3. Repeat until all supply is routed:
//     a. Dijkstra over reduced costs from the super-source.
//     b. If the super-sink is unreachable → ErrInfeasible.
//     c. Add distances to potentials of reached nodes; shortest-path arcs now
//     have zero reduced cost.
//     d. Push a blocking flow through the zero-reduced-cost subgraph.
//  4. Read flows back from the reverse residual arcs.
//
// The result is deterministic: arcs are scanned in insertion order and heap
// ties break by node index.
//
// Complexity:
//
//	Time:   O(P · (E log V + D)) where P is the number of distinct shortest-path
//	        lengths encountered and D the cost of a Dinic blocking flow.
//	Memory: O(V + E).
func MinCostFlow(nw Network, opts Options) (*Result, error) {
	if nw == nil {
		return nil, ErrNilNetwork
	}
	opts.normalize()

	// 1) Residual network with super terminals.
	r, arcID, s, t, supply, err := buildResidual(nw)
	if err != nil {
		return nil, err
	}

	nodes := len(r.head)
	pot := make([]int64, nodes)
	dist := make([]int64, nodes)
	done := make([]bool, nodes)
	b := &blocking{r: r, s: s, t: t, pot: pot, level: make([]int, nodes), iter: make([]int, nodes)}

	res := &Result{}
	var routed int64
	// 3) Successive shortest paths, one phase per distinct path length.
	for routed < supply {
		if err = shortestPaths(r, s, pot, dist, done); err != nil {
			return nil, err
		}
		if dist[t] == inf {
			return nil, infeasiblef("routed %d of %d supply units", routed, supply)
		}
		for v := range pot {
			if done[v] {
				pot[v] += dist[v]
			}
		}
		res.Phases++

		pushed, paths := b.run()
		if pushed == 0 {
			return nil, infeasiblef("no admissible path in phase %d", res.Phases)
		}
		routed += pushed
		res.Augmentations += paths
		if opts.Verbose {
			opts.Logger.Debug("flow: phase complete",
				zap.Int("phase", res.Phases),
				zap.Int64("pushed", pushed),
				zap.Int64("routed", routed),
				zap.Int64("supply", supply),
				zap.Int64("path_cost", pot[t]-pot[s]),
			)
		}
	}

	// 4) Flows and total cost.
	res.Flow = make([]int64, len(arcID))
	for i, id := range arcID {
		f := r.flowOn(id)
		res.Flow[i] = f
		if f == 0 {
			continue
		}
		w := r.cost[id]
		if w > 0 && f > (inf-res.Cost)/w {
			return nil, ErrCostOverflow
		}
		res.Cost += f * w
	}

	return res, nil
}

func infeasiblef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInfeasible, fmt.Sprintf(format, args...))
}
