package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/capkmeans/flow"
	"github.com/katalvlaran/capkmeans/geom"
)

// Build constructs the assignment network for points, the current centers and
// the per-cluster minimums.
//
// Implementation:
//   - Stage 1: validate shapes, demands and coordinates (no allocation on failure).
//   - Stage 2: compute scaled distances, truncating toward zero. The scale
//     is lowered when the largest distance would overflow the solver.
//   - Stage 3: lay out node demands and arcs in the fixed order documented
//     in the package comment.
//
// Build is pure: it neither logs nor retains points or centers.
//
// Complexity: O(N·k) time and memory.
func Build(points, centers []geom.Point, demand []int, opts ...Option) (*Network, error) {
	cfg := options{scale: DefaultCostScale}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Stage 1: validation.
	n, k := len(points), len(centers)
	if err := Validate(n, demand); err != nil {
		return nil, err
	}
	if len(demand) != k {
		return nil, fmt.Errorf("%w: %d demands for %d centers", ErrDemandLength, len(demand), k)
	}
	if math.IsNaN(cfg.scale) || math.IsInf(cfg.scale, 0) || cfg.scale <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrBadCostScale, cfg.scale)
	}
	for i, p := range points {
		if !p.Finite() {
			return nil, fmt.Errorf("%w: point %d (%g, %g)", ErrNonFinitePoint, i, p.X, p.Y)
		}
	}
	for j, c := range centers {
		if !c.Finite() {
			return nil, fmt.Errorf("%w: center %d (%g, %g)", ErrNonFinitePoint, j, c.X, c.Y)
		}
	}

	// Stage 2: distances and the scale that applies to them.
	dist := make([]float64, n*k)
	var maxDist float64
	for i, p := range points {
		for j, c := range centers {
			d := geom.Distance(p, c)
			dist[i*k+j] = d
			maxDist = math.Max(maxDist, d)
		}
	}
	nodes := n + k + 1
	limit := maxArcCost(n, k)
	scale := cfg.scale
	if maxDist*scale > float64(limit) {
		if cfg.strict {
			return nil, fmt.Errorf("%w: max distance %g × scale %g exceeds %d", ErrCostOverflow, maxDist, scale, limit)
		}
		scale = float64(limit) / maxDist
	}

	// Stage 3: nodes and arcs.
	nw := &Network{
		n:      n,
		k:      k,
		demand: make([]int64, nodes),
		arcs:   make([]Arc, 0, n*k+k),
		scale:  scale,
	}
	var total int64
	for i := 0; i < n; i++ {
		nw.demand[i] = -1
	}
	for j, d := range demand {
		nw.demand[n+j] = int64(d)
		total += int64(d)
	}
	nw.overflow = int64(n) - total
	nw.demand[n+k] = nw.overflow

	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			c := int64(dist[i*k+j] * scale)
			if c > limit {
				c = limit
			}
			if c > nw.maxCost {
				nw.maxCost = c
			}
			nw.arcs = append(nw.arcs, Arc{From: i, To: n + j, Capacity: 1, Cost: c})
		}
	}
	for j := 0; j < k; j++ {
		nw.arcs = append(nw.arcs, Arc{From: n + j, To: n + k, Capacity: flow.Unbounded})
	}

	return nw, nil
}

// Validate checks the problem shape shared by Build and the clustering engine:
// k = len(demand) > 0, n ≥ k, every minimum ≥ 0 and Σ minimums ≤ n.
//
// Complexity: O(k).
func Validate(n int, demand []int) error {
	k := len(demand)
	if k == 0 {
		return ErrNoClusters
	}
	if n < k {
		return fmt.Errorf("%w: %d points, %d clusters", ErrTooFewPoints, n, k)
	}
	var total int
	for j, d := range demand {
		if d < 0 {
			return fmt.Errorf("%w: cluster %d wants %d", ErrNegativeDemand, j, d)
		}
		total += d
		if total > n {
			return fmt.Errorf("%w: Σ demand > %d points", ErrDemandExceedsPoints, n)
		}
	}

	return nil
}
