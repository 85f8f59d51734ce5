// Package flow solves minimum-cost flow problems with node demands on small
// to medium integer networks.
//
// The solver is the primal-dual form of successive shortest paths:
//
//   - Shortest paths
//
//   - Method: Dijkstra over reduced costs cost(u,v) + π(u) − π(v), with
//     Johnson potentials π kept non-negative-consistent after every phase.
//
//   - Time:   O((V + E) log V) per phase.
//
//   - Augmentation
//
//   - Method: Dinic-style blocking flow restricted to arcs of zero reduced
//     cost, so every unit pushed in a phase travels a shortest path.
//
//   - Time:   O(E · √V) on the unit-capacity networks produced by the
//     clustering builder.
//
// # Problem Shape
//
// A Network exposes nodes with integer demands and arcs with integer capacity
// and non-negative integer cost:
//
//	demand(v) < 0   v must send −demand(v) units (supply)
//	demand(v) > 0   v must receive demand(v) units
//	capacity        use Unbounded for uncapacitated arcs
//
// Demands must sum to zero. Internally a virtual super-source feeds every
// supply node and a virtual super-sink drains every demand node; the flow is
// feasible exactly when all supply reaches the super-sink.
//
// # API
//
//	res, err := flow.MinCostFlow(nw, flow.DefaultOptions())
//	// res.Flow[i] is the flow on arc i, res.Cost the total cost.
//
// # Errors
//
//	ErrNilNetwork   - nw is nil.
//	ArcError        - bad endpoint, negative capacity or negative cost.
//	ErrInfeasible   - demands do not sum to zero, or supply cannot be routed.
//	ErrCostOverflow - a path or total cost leaves the int64 range.
//
// Costs are integers on purpose: equal-cost comparisons are exact, which keeps
// the solver deterministic for a fixed input.
package flow
