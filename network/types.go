// Package network builds the flow network that assigns points to clusters
// under per-cluster minimum sizes, and reads cluster labels back from a solved
// flow.
//
// Node layout for N points and k clusters:
//
//	0 … N-1      point nodes,   demand −1 (each sends one unit)
//	N … N+k-1    cluster nodes, demand = minimum points of that cluster
//	N+k          overflow node, demand = N − Σ minimums
//
// Arc layout:
//
//	i·k + j      point i → cluster j, capacity 1, cost = scaled distance
//	N·k + j      cluster j → overflow, capacity flow.Unbounded, cost 0
//
// Errors:
//
//	ErrNoClusters          - no centers supplied.
//	ErrTooFewPoints        - fewer points than clusters.
//	ErrDemandLength        - len(demand) differs from the number of centers.
//	ErrNegativeDemand      - a minimum is below zero.
//	ErrDemandExceedsPoints - Σ minimums > N.
//	ErrNonFinitePoint      - a point or center has a NaN/Inf coordinate.
//	ErrBadCostScale        - cost scale is not a positive finite number.
//	ErrCostOverflow        - scaled distances too large for exact path sums.
//	ErrFlowLength          - flow slice does not match the arc count.
//	ErrUnassignedPoint     - a point carries no flow to any cluster.
package network

import (
	"errors"
	"math"

	"github.com/katalvlaran/capkmeans/flow"
)

// DefaultCostScale converts distances to integer costs: a cost unit is one
// billionth of a coordinate unit.
const DefaultCostScale = 1e9

// Sentinel errors for network construction and label extraction.
var (
	// ErrNoClusters indicates that no centers were supplied.
	ErrNoClusters = errors.New("network: no clusters")

	// ErrTooFewPoints indicates fewer points than clusters.
	ErrTooFewPoints = errors.New("network: fewer points than clusters")

	// ErrDemandLength indicates a demand vector whose length is not the cluster count.
	ErrDemandLength = errors.New("network: demand length does not match cluster count")

	// ErrNegativeDemand indicates a negative minimum for some cluster.
	ErrNegativeDemand = errors.New("network: negative cluster demand")

	// ErrDemandExceedsPoints indicates that minimums add up to more than N.
	ErrDemandExceedsPoints = errors.New("network: total demand exceeds point count")

	// ErrNonFinitePoint indicates a NaN or infinite coordinate.
	ErrNonFinitePoint = errors.New("network: non-finite coordinate")

	// ErrBadCostScale indicates a cost scale that is not positive and finite.
	ErrBadCostScale = errors.New("network: cost scale must be positive and finite")

	// ErrCostOverflow indicates scaled distances that could overflow int64 path costs.
	ErrCostOverflow = errors.New("network: scaled distance too large")

	// ErrFlowLength indicates a flow slice that does not belong to this network.
	ErrFlowLength = errors.New("network: flow length does not match arc count")

	// ErrUnassignedPoint indicates a point without positive flow to any cluster.
	ErrUnassignedPoint = errors.New("network: point has no positive flow to any cluster")
)

// NodeKind classifies network nodes.
type NodeKind int

const (
	// PointNode sends exactly one unit.
	PointNode NodeKind = iota
	// ClusterNode receives at least its minimum.
	ClusterNode
	// OverflowNode absorbs everything above the minimums.
	OverflowNode
)

func (k NodeKind) String() string {
	switch k {
	case PointNode:
		return "point"
	case ClusterNode:
		return "cluster"
	case OverflowNode:
		return "overflow"
	default:
		return "unknown"
	}
}

// Arc is a directed arc of the network.
type Arc struct {
	From     int
	To       int
	Capacity int64
	Cost     int64
}

// Option configures Build.
type Option func(*options)

type options struct {
	scale  float64
	strict bool
}

// WithCostScale sets the distance → integer cost multiplier. Larger values
// resolve smaller distance differences but shrink the coordinate range that
// fits into int64 path sums.
func WithCostScale(scale float64) Option {
	return func(o *options) { o.scale = scale }
}

// Stats is a read-only summary of a Network.
type Stats struct {
	Points    int
	Clusters  int
	Nodes     int
	Arcs      int
	Supply    int64 // units sent by point nodes (== Points)
	Overflow  int64 // demand of the overflow node
	MaxCost   int64 // largest point→cluster cost
	CostScale float64
}

// Network is an immutable point→cluster flow network. It implements
// flow.Network.
type Network struct {
	n, k     int
	demand   []int64 // per node
	arcs     []Arc
	scale    float64
	maxCost  int64
	overflow int64
}

var _ flow.Network = (*Network)(nil)

// maxArcCost bounds a single arc cost for n points and k clusters.
//
// A simple residual path enters each cluster node and the overflow node at
// most once, so it carries at most k+1 priced arcs and its cost, like every
// potential, lies within ±(k+1)·maxCost. Reduced costs and tentative Dijkstra
// distances stay within a small multiple of that, hence the 8·(k+2) divisor.
// The total flow cost sums at most n unit arcs, hence the n+1 divisor.
func maxArcCost(n, k int) int64 {
	d := 8 * (k + 2)
	if n+1 > d {
		d = n + 1
	}
	return math.MaxInt64 / int64(d)
}

// WithStrictScale makes Build fail with ErrCostOverflow when the requested
// cost scale would push the largest point→center cost past the overflow
// bound. By default Build lowers the scale to fit instead and reports the
// effective value through CostScale.
func WithStrictScale() Option {
	return func(o *options) { o.strict = true }
}
