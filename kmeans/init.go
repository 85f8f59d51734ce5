package kmeans

import (
	"math/rand"

	"github.com/katalvlaran/capkmeans/geom"
)

// initCenters places k initial centers using strategy s and rng.
//
//   - InitBoundingBox: for each center, x then y drawn uniformly within the
//     per-axis range of points. A zero-width axis yields that constant.
//   - InitSamplePoints: k distinct points picked by a random permutation.
//
// points must be non-empty and n ≥ k (checked by the caller).
func initCenters(points []geom.Point, k int, s InitStrategy, rng *rand.Rand) ([]geom.Point, error) {
	centers := make([]geom.Point, k)
	switch s {
	case InitBoundingBox:
		b, err := geom.BoundingBox(points)
		if err != nil {
			return nil, err
		}
		for j := range centers {
			centers[j] = geom.Point{
				X: b.Min.X + rng.Float64()*b.Width(),
				Y: b.Min.Y + rng.Float64()*b.Height(),
			}
		}
	case InitSamplePoints:
		perm := rng.Perm(len(points))
		for j := range centers {
			centers[j] = points[perm[j]]
		}
	default:
		return nil, ErrUnknownInit
	}

	return centers, nil
}
