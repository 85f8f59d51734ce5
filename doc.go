// Package capkmeans is the root of a constrained k-means toolkit: it splits
// 2-D points into k clusters where cluster j holds at least Demand[j] points.
//
// Each iteration assigns points to the current centers by solving a
// min-cost flow, then moves every center to the mean of its points. The flow
// formulation is what enforces the minimum sizes; plain nearest-center
// assignment cannot.
//
// Packages:
//
//	geom/     points, distances, bounding boxes, centroids, representative points
//	flow/     min-cost flow with node demands (primal-dual, Dijkstra + blocking flow)
//	network/  builds the point → cluster → overflow network and reads labels back
//	kmeans/   the iteration engine: Cluster, ClusterBest, Assign, UpdateCenters
//	pointio/  CSV / GeoJSON input and labelled output, gzip/zstd/lz4 aware
//	config/   YAML / TOML / JSON configuration with env overrides
//	logging/  zap logger with optional rotating file
//	metrics/  Prometheus collector fed by the engine's observer hook
//	server/   HTTP API (chi) around kmeans
//	cmd/capkmeans `run` and `serve` subcommands
//
// Quick example:
//
//	cfg := kmeans.Config{K: 3, Demand: kmeans.UniformDemand(3, 10), MaxIterations: 20}
//	res, err := kmeans.Cluster(ctx, points, cfg)
//	// res.Labels[i] ∈ [0,3), res.Sizes[j] ≥ 10
//
//	go get github.com/katalvlaran/capkmeans
package capkmeans
