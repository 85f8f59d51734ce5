package flow_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/capkmeans/flow"
)

// BenchmarkMinCostFlowAssignment measures clustering-shaped networks of
// increasing size with uniform minimum demands.
func BenchmarkMinCostFlowAssignment(b *testing.B) {
	cases := []struct {
		name   string
		points int
		k      int
		min    int64
		seed   int64
	}{
		{"Small", 200, 5, 20, 42},
		{"Medium", 1000, 10, 50, 4242},
		{"Large", 4000, 20, 100, 424242},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			r := rand.New(rand.NewSource(tc.seed))
			costs := make([][]int64, tc.points)
			for i := range costs {
				costs[i] = make([]int64, tc.k)
				for j := range costs[i] {
					costs[i][j] = r.Int63n(1_000_000_000)
				}
			}
			demand := make([]int64, tc.k)
			for j := range demand {
				demand[j] = tc.min
			}
			nw := assignmentNetwork(costs, demand)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := flow.MinCostFlow(nw, flow.DefaultOptions()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
