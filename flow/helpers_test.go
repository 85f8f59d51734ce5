package flow_test

import "github.com/katalvlaran/capkmeans/flow"

type testArc struct {
	from, to int
	capacity int64
	cost     int64
}

// testNetwork is a slice-backed flow.Network for tests.
type testNetwork struct {
	demand []int64
	arcs   []testArc
}

func (n *testNetwork) NumNodes() int      { return len(n.demand) }
func (n *testNetwork) Demand(v int) int64 { return n.demand[v] }
func (n *testNetwork) NumArcs() int       { return len(n.arcs) }
func (n *testNetwork) Arc(i int) (int, int, int64, int64) {
	a := n.arcs[i]
	return a.from, a.to, a.capacity, a.cost
}

// assignmentNetwork mirrors the clustering layout: points, clusters with
// minimum demands, and one overflow node.
func assignmentNetwork(costs [][]int64, demand []int64) *testNetwork {
	n, k := len(costs), len(demand)
	nw := &testNetwork{demand: make([]int64, n+k+1)}
	var total int64
	for i := 0; i < n; i++ {
		nw.demand[i] = -1
		for j := 0; j < k; j++ {
			nw.arcs = append(nw.arcs, testArc{from: i, to: n + j, capacity: 1, cost: costs[i][j]})
		}
	}
	for j := 0; j < k; j++ {
		nw.demand[n+j] = demand[j]
		total += demand[j]
		nw.arcs = append(nw.arcs, testArc{from: n + j, to: n + k, capacity: flow.Unbounded})
	}
	nw.demand[n+k] = int64(n) - total

	return nw
}

// bruteForceAssignment enumerates every labelling that honours the minimums
// and returns the cheapest cost.
func bruteForceAssignment(costs [][]int64, demand []int64) int64 {
	n, k := len(costs), len(demand)
	labels := make([]int, n)
	best := int64(-1)
	var rec func(i int)
	rec = func(i int) {
		if i == n {
			counts := make([]int64, k)
			var c int64
			for p, l := range labels {
				counts[l]++
				c += costs[p][l]
			}
			for j := range counts {
				if counts[j] < demand[j] {
					return
				}
			}
			if best < 0 || c < best {
				best = c
			}
			return
		}
		for j := 0; j < k; j++ {
			labels[i] = j
			rec(i + 1)
		}
	}
	rec(0)

	return best
}
