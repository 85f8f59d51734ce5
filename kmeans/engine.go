package kmeans

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/capkmeans/flow"
	"github.com/katalvlaran/capkmeans/geom"
	"github.com/katalvlaran/capkmeans/network"
)

// Cluster partitions points into cfg.K clusters, each holding at least
// cfg.Demand[j] points.
//
// State machine:
//   - Initializing: validate cfg, draw centers, set all labels to −1.
//   - Iterating: assign (build → solve → extract). Labels equal to the
//     previous ones ⇒ Converged. Otherwise adopt them, update centers, and
//     stop with IterationCapReached once cfg.MaxIterations updates are done.
//
// ctx is checked between iterations only; a solve is never interrupted.
//
// Complexity: O(MaxIterations · solve(N·k)).
func Cluster(ctx context.Context, points []geom.Point, cfg Config, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	// Initializing.
	if err := cfg.validate(points); err != nil {
		return nil, err
	}
	seed := effectiveSeed(cfg.Seed)
	centers, err := initCenters(points, cfg.K, cfg.Init, rngFromSeed(seed))
	if err != nil {
		return nil, invalid("init", err)
	}
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	fopts := flow.Options{Verbose: o.verboseSolver, Logger: o.logger}
	nopts := cfg.networkOptions()
	log := o.logger.With(zap.Int("n", len(points)), zap.Int("k", cfg.K), zap.Int64("seed", seed))
	log.Debug("kmeans: start", zap.Stringer("init", cfg.Init), zap.Int("max_iterations", cfg.MaxIterations))

	res := &Result{Seed: seed, State: StateIterating}
	for solve := 1; ; solve++ {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("kmeans: stopped after %d iterations: %w", res.Iterations, err)
		}

		a, err := assign(points, centers, cfg.Demand, fopts, nopts...)
		if err != nil {
			return nil, err
		}
		moved := countMoved(labels, a.Labels)
		res.Cost = a.Cost

		stats := IterationStats{
			Iteration:     solve,
			Moved:         moved,
			Cost:          a.Cost,
			Phases:        a.Phases,
			CostScale:     a.CostScale,
			SolveDuration: a.Duration,
		}
		if o.observer != nil {
			o.observer.OnIteration(stats)
		}
		log.Debug("kmeans: iteration",
			zap.Int("iteration", solve),
			zap.Int("moved", moved),
			zap.Int64("cost", a.Cost),
			zap.Int("phases", a.Phases),
			zap.Duration("solve", a.Duration),
		)

		if moved == 0 {
			res.State = StateConverged
			break
		}
		labels = a.Labels
		UpdateCenters(points, labels, centers)
		res.Iterations++
		if res.Iterations >= cfg.MaxIterations {
			res.State = StateIterationCapReached
			break
		}
	}

	res.Centers = centers
	res.Labels = labels
	res.Sizes = tally(labels, cfg.K)
	res.Inertia = inertia(points, labels, centers)
	if o.observer != nil {
		o.observer.OnFinish(res)
	}
	log.Debug("kmeans: done",
		zap.Stringer("state", res.State),
		zap.Int("iterations", res.Iterations),
		zap.Float64("inertia", res.Inertia),
	)

	return res, nil
}

// validate checks cfg against the input before any work is done.
func (cfg Config) validate(points []geom.Point) error {
	if cfg.K <= 0 {
		return invalid("validate", fmt.Errorf("%w: got %d", ErrBadK, cfg.K))
	}
	if len(cfg.Demand) != cfg.K {
		return invalid("validate", fmt.Errorf("%w: %d demands for k=%d", ErrDemandLength, len(cfg.Demand), cfg.K))
	}
	if cfg.MaxIterations <= 0 {
		return invalid("validate", fmt.Errorf("%w: got %d", ErrBadMaxIterations, cfg.MaxIterations))
	}
	if _, err := ParseInit(cfg.Init.String()); err != nil {
		return invalid("validate", err)
	}
	if err := network.Validate(len(points), cfg.Demand); err != nil {
		return invalid("validate", err)
	}
	for i, p := range points {
		if !p.Finite() {
			return invalid("validate", fmt.Errorf("%w: point %d", network.ErrNonFinitePoint, i))
		}
	}
	if cfg.CostScale < 0 || math.IsNaN(cfg.CostScale) || math.IsInf(cfg.CostScale, 0) {
		return invalid("validate", fmt.Errorf("%w: %g", network.ErrBadCostScale, cfg.CostScale))
	}

	return nil
}

func (cfg Config) networkOptions() []network.Option {
	var opts []network.Option
	if cfg.CostScale > 0 {
		opts = append(opts, network.WithCostScale(cfg.CostScale))
	}
	if cfg.StrictScale {
		opts = append(opts, network.WithStrictScale())
	}
	return opts
}

// countMoved returns the number of positions where prev and next differ.
func countMoved(prev, next []int) int {
	moved := 0
	for i := range next {
		if prev[i] != next[i] {
			moved++
		}
	}
	return moved
}
