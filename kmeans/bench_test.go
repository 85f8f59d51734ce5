package kmeans_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/capkmeans/kmeans"
)

func BenchmarkCluster(b *testing.B) {
	pts := randomBlobs(2000, 10, 1)
	cfg := kmeans.Config{K: 10, Demand: kmeans.UniformDemand(10, 150), MaxIterations: kmeans.DefaultMaxIterations, Seed: 1}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := kmeans.Cluster(context.Background(), pts, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssign(b *testing.B) {
	pts := randomBlobs(5000, 8, 2)
	centers := randomBlobs(20, 4, 3)
	demand := kmeans.UniformDemand(20, 200)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := kmeans.Assign(pts, centers, demand); err != nil {
			b.Fatal(err)
		}
	}
}
