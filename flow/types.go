package flow

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Unbounded is the capacity of an uncapacitated arc.
const Unbounded int64 = math.MaxInt64

// ErrNilNetwork is returned when MinCostFlow receives a nil network.
var ErrNilNetwork = errors.New("flow: network is nil")

// ErrInfeasible is returned when node demands cannot be satisfied: either they
// do not sum to zero or the arcs cannot carry every unit of supply.
var ErrInfeasible = errors.New("flow: infeasible network")

// ErrCostOverflow is returned when a path cost no longer fits in int64.
var ErrCostOverflow = errors.New("flow: path cost overflows int64")

// ArcError is returned when an arc is malformed: negative capacity, negative
// cost or an endpoint outside [0, NumNodes).
type ArcError struct {
	Index    int
	From, To int
	Capacity int64
	Cost     int64
	Reason   string
}

func (e ArcError) Error() string {
	return fmt.Sprintf("flow: arc %d (%d→%d, cap=%d, cost=%d): %s",
		e.Index, e.From, e.To, e.Capacity, e.Cost, e.Reason)
}

// Network is the read-only view MinCostFlow needs. Node demands follow the
// sign convention negative = supply (must send), positive = demand (must
// receive). Arc indices are stable and index Result.Flow.
type Network interface {
	NumNodes() int
	Demand(v int) int64
	NumArcs() int
	Arc(i int) (from, to int, capacity, cost int64)
}

// Options configures MinCostFlow.
//   - Verbose: log every phase at debug level through Logger.
//   - Logger: destination for verbose output; nil means no logging.
type Options struct {
	Verbose bool
	Logger  *zap.Logger
}

// DefaultOptions returns quiet options with a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

func (o *Options) normalize() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Result is a feasible minimum-cost flow.
type Result struct {
	// Flow holds the flow on every arc, indexed like Network.Arc.
	Flow []int64

	// Cost is Σ Flow[i]·cost(i).
	Cost int64

	// Phases counts shortest-path (potential update) rounds.
	Phases int

	// Augmentations counts individual augmenting paths.
	Augmentations int
}
