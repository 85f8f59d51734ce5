package kmeans

import "github.com/katalvlaran/capkmeans/geom"

// UpdateCenters moves every center to the mean of the points labelled with
// it, in place, and returns the per-cluster counts.
//
// A cluster with no points keeps its previous center: no division by zero,
// no re-seeding. Labels outside [0, len(centers)) are ignored.
//
// Complexity: O(N + k).
func UpdateCenters(points []geom.Point, labels []int, centers []geom.Point) []int {
	k := len(centers)
	sums := make([]geom.Point, k)
	counts := make([]int, k)
	for i, l := range labels {
		if l < 0 || l >= k {
			continue
		}
		sums[l].X += points[i].X
		sums[l].Y += points[i].Y
		counts[l]++
	}
	for j := range centers {
		if counts[j] == 0 {
			continue
		}
		n := float64(counts[j])
		centers[j] = geom.Point{X: sums[j].X / n, Y: sums[j].Y / n}
	}

	return counts
}

// tally counts labels per cluster.
func tally(labels []int, k int) []int {
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	return sizes
}

// inertia returns Σ distance(point, center of its label).
func inertia(points []geom.Point, labels []int, centers []geom.Point) float64 {
	var s float64
	for i, l := range labels {
		s += geom.Distance(points[i], centers[l])
	}
	return s
}
