package kmeans

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/capkmeans/geom"
)

// DefaultMaxIterations is the iteration budget of config.Default.
const DefaultMaxIterations = 5

// InitStrategy selects how initial centers are placed.
type InitStrategy int

const (
	// InitBoundingBox draws every coordinate uniformly in [min, max] of its axis.
	InitBoundingBox InitStrategy = iota
	// InitSamplePoints uses k distinct input points chosen at random.
	InitSamplePoints
)

func (s InitStrategy) String() string {
	switch s {
	case InitBoundingBox:
		return "bbox"
	case InitSamplePoints:
		return "sample"
	default:
		return "unknown"
	}
}

// ParseInit maps "bbox" / "sample" (and "" → bbox) to an InitStrategy.
func ParseInit(s string) (InitStrategy, error) {
	switch s {
	case "", "bbox":
		return InitBoundingBox, nil
	case "sample":
		return InitSamplePoints, nil
	default:
		return 0, ErrUnknownInit
	}
}

// Config holds the inputs of one clustering run.
type Config struct {
	// K is the number of clusters.
	K int

	// Demand holds the minimum size of each cluster; len(Demand) must be K.
	Demand []int

	// MaxIterations caps the number of center updates.
	MaxIterations int

	// Seed drives initialization; 0 selects a fixed default seed.
	Seed int64

	// CostScale multiplies distances before truncation to integer costs;
	// 0 selects network.DefaultCostScale.
	CostScale float64

	// StrictScale fails with network.ErrCostOverflow instead of lowering
	// CostScale for an iteration whose distances would overflow the solver.
	StrictScale bool

	// Init selects the initialization strategy.
	Init InitStrategy
}

// UniformDemand returns a demand vector asking minPoints of each of k clusters.
func UniformDemand(k, minPoints int) []int {
	if k <= 0 {
		return nil
	}
	d := make([]int, k)
	for j := range d {
		d[j] = minPoints
	}
	return d
}

// State is the engine state; Result carries one of the two terminal states.
type State int

const (
	// StateInitializing: config validated, centers not yet drawn.
	StateInitializing State = iota
	// StateIterating: assignment and update passes are running.
	StateIterating
	// StateConverged: an assignment pass reproduced the previous labels.
	StateConverged
	// StateIterationCapReached: MaxIterations center updates were done.
	StateIterationCapReached
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateIterationCapReached:
		return "iteration_cap_reached"
	default:
		return "unknown"
	}
}

// Result is the outcome of a run.
type Result struct {
	// Centers holds the final center of every cluster.
	Centers []geom.Point

	// Labels maps every input point, in input order, to its cluster in [0, K).
	Labels []int

	// Sizes counts points per cluster; Σ Sizes == N and Sizes[j] ≥ Demand[j].
	Sizes []int

	// Iterations counts completed center updates (≤ MaxIterations).
	Iterations int

	// State is StateConverged or StateIterationCapReached.
	State State

	// Cost is the integer flow cost of the last assignment solve.
	Cost int64

	// Inertia is Σ distance(point, center of its cluster) for the final centers.
	Inertia float64

	// Seed is the seed actually used (after the seed==0 policy).
	Seed int64

	// Restart is the index of the winning restart for ClusterBest, else 0.
	Restart int
}

// Converged reports whether the run ended on a fixed point.
func (r *Result) Converged() bool { return r.State == StateConverged }

// SizeOf returns the size of the cluster that label belongs to.
func (r *Result) SizeOf(label int) int { return r.Sizes[label] }

// IterationStats describes one assignment pass.
type IterationStats struct {
	Iteration     int           // 1-based solve count
	Moved         int           // points whose label changed (all on the first pass)
	Cost          int64         // flow cost of this assignment
	Phases        int           // solver phases
	CostScale     float64       // distance multiplier in effect
	SolveDuration time.Duration // build + solve + extract
}

// Observer receives progress callbacks. ClusterBest invokes it from several
// goroutines, so implementations must be safe for concurrent use.
type Observer interface {
	OnIteration(IterationStats)
	OnFinish(*Result)
}

// Option configures Cluster and ClusterBest.
type Option func(*options)

type options struct {
	logger        *zap.Logger
	observer      Observer
	verboseSolver bool
}

// WithLogger routes debug output of the engine (and the solver when
// WithVerboseSolver is set) to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers progress callbacks.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithVerboseSolver logs every solver phase at debug level.
func WithVerboseSolver() Option {
	return func(o *options) { o.verboseSolver = true }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}
