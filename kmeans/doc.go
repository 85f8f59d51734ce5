// Package kmeans implements k-means clustering of 2D points in which every
// cluster must receive at least a configured minimum number of points.
//
// Each iteration alternates two steps, as in Lloyd's algorithm:
//
//  1. Assignment: a minimum-cost flow over the network built by package
//     network routes every point to one cluster, paying the scaled Euclidean
//     distance, while each cluster receives at least its minimum.
//  2. Update: every non-empty cluster moves its center to the mean of its
//     points; empty clusters keep their previous center.
//
// The run stops when an assignment reproduces the previous labels
// (StateConverged) or after MaxIterations center updates
// (StateIterationCapReached). Both states yield a complete Result.
//
// Initial centers are drawn uniformly inside the bounding box of the input
// from a generator seeded by Config.Seed; the same seed and input always give
// the same Result. The flow solve itself has no randomness.
//
// Errors are *Error values of one of three kinds, matched with errors.Is:
//
//	ErrInvalidConfiguration - bad k, demands, iteration cap, points or scale.
//	ErrInfeasible           - the solver could not balance supply and demand.
//	ErrUnassignedPoint      - a solved flow left a point without a cluster.
//
// A run never returns partial output together with an error.
//
// Example:
//
//	cfg := kmeans.Config{K: 3, Demand: kmeans.UniformDemand(3, 10), MaxIterations: 20, Seed: 42}
//	res, err := kmeans.Cluster(ctx, points, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Sizes, res.State)
package kmeans
