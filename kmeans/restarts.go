package kmeans

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/capkmeans/geom"
)

// ClusterBest runs `restarts` independent Cluster calls and returns the one
// with the lowest Inertia (ties go to the lower restart index).
//
// Restart 0 uses cfg.Seed; restart r > 0 uses a seed derived from cfg.Seed and
// r, so the whole ensemble is reproducible. Runs execute concurrently, at most
// GOMAXPROCS at a time; each run stays single-threaded. The first failing run
// cancels the others and its error is returned.
//
// An Observer sees the iterations of every restart but OnFinish only once,
// with the winning Result.
func ClusterBest(ctx context.Context, points []geom.Point, cfg Config, restarts int, opts ...Option) (*Result, error) {
	if restarts < 1 {
		return nil, invalid("validate", fmt.Errorf("%w: got %d", ErrBadRestarts, restarts))
	}
	if err := cfg.validate(points); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	runOpts := opts
	if o.observer != nil {
		runOpts = append(append([]Option(nil), opts...), WithObserver(restartObserver{o.observer}))
	}

	base := effectiveSeed(cfg.Seed)
	results := make([]*Result, restarts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r < restarts; r++ {
		r := r
		run := cfg
		run.Seed = base
		if r > 0 {
			run.Seed = deriveSeed(base, uint64(r))
		}
		g.Go(func() error {
			res, err := Cluster(gctx, points, run, runOpts...)
			if err != nil {
				return err
			}
			res.Restart = r
			results[r] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, res := range results[1:] {
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	if o.observer != nil {
		o.observer.OnFinish(best)
	}

	return best, nil
}

// restartObserver forwards iterations of a single restart and holds back its
// OnFinish until ClusterBest has picked the winner.
type restartObserver struct{ Observer }

func (restartObserver) OnFinish(*Result) {}
