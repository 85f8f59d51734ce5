package kmeans_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/capkmeans/geom"
	"github.com/katalvlaran/capkmeans/kmeans"
)

// ExampleCluster splits two far-apart triangles into clusters of at least
// three points each.
func ExampleCluster() {
	points := []geom.Point{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0},
		{X: 10, Y: 10}, {X: 10, Y: 11}, {X: 11, Y: 10},
	}
	cfg := kmeans.Config{K: 2, Demand: []int{3, 3}, MaxIterations: 20, Seed: 42}

	res, err := kmeans.Cluster(context.Background(), points, cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	l := res.Labels
	pure := l[0] == l[1] && l[1] == l[2] && l[3] == l[4] && l[4] == l[5] && l[0] != l[3]
	fmt.Println("sizes:", res.Sizes)
	fmt.Println("groups kept together:", pure)
	// Output:
	// sizes: [3 3]
	// groups kept together: true
}

// ExampleAssign runs a single assignment pass against fixed centers.
func ExampleAssign() {
	points := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	centers := []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 0}}

	// The second center must take three points although only one is near it.
	a, err := kmeans.Assign(points, centers, []int{1, 3})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(a.Labels)
	// Output:
	// [0 1 1 1]
}
