package kmeans

import (
	"time"

	"github.com/katalvlaran/capkmeans/flow"
	"github.com/katalvlaran/capkmeans/geom"
	"github.com/katalvlaran/capkmeans/network"
)

// Assignment is the outcome of a single constrained assignment pass.
type Assignment struct {
	Labels    []int
	Cost      int64
	Phases    int
	CostScale float64
	Duration  time.Duration
}

// Assign runs one build → solve → extract pass for fixed centers. It has no
// randomness: identical inputs give identical labels.
//
// Errors are *Error values (see package doc).
func Assign(points, centers []geom.Point, demand []int, opts ...network.Option) (*Assignment, error) {
	return assign(points, centers, demand, flow.DefaultOptions(), opts...)
}

func assign(points, centers []geom.Point, demand []int, fopts flow.Options, opts ...network.Option) (*Assignment, error) {
	start := time.Now()
	nw, err := network.Build(points, centers, demand, opts...)
	if err != nil {
		return nil, invalid("build", err)
	}
	res, err := flow.MinCostFlow(nw, fopts)
	if err != nil {
		return nil, classify("solve", err)
	}
	labels, err := nw.Labels(res.Flow)
	if err != nil {
		return nil, classify("extract", err)
	}

	return &Assignment{
		Labels:    labels,
		Cost:      res.Cost,
		Phases:    res.Phases,
		CostScale: nw.CostScale(),
		Duration:  time.Since(start),
	}, nil
}
