package flow

import (
	"container/heap"
	"math"
)

// inf marks an unreachable node.
const inf int64 = math.MaxInt64

// shortestPaths runs Dijkstra from s over arcs with positive residual
// capacity, measuring reduced cost cost(u,v) + pot[u] - pot[v]. Reduced costs
// are non-negative on every residual arc between reachable nodes, which is the
// invariant the potentials maintain.
//
// dist is filled in place (inf for unreachable nodes).
//
// We use a "lazy" decrease-key strategy: improved distances are pushed as new
// heap entries and stale entries are skipped on pop.
//
// Complexity: O((V + E) log V).
func shortestPaths(r *residual, s int, pot, dist []int64, done []bool) error {
	for v := range dist {
		dist[v] = inf
		done[v] = false
	}
	dist[s] = 0

	pq := make(nodePQ, 0, len(dist))
	heap.Push(&pq, nodeItem{node: s, dist: 0})
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(nodeItem)
		u := item.node
		if done[u] {
			continue
		}
		done[u] = true

		for _, id := range r.head[u] {
			if r.cap[id] <= 0 {
				continue
			}
			v := r.to[id]
			if done[v] {
				continue
			}
			rc := r.cost[id] + pot[u] - pot[v]
			nd := item.dist + rc
			if nd < item.dist {
				return ErrCostOverflow
			}
			if nd < dist[v] {
				dist[v] = nd
				heap.Push(&pq, nodeItem{node: v, dist: nd})
			}
		}
	}

	return nil
}

// nodeItem is a heap entry: a node and its tentative distance.
type nodeItem struct {
	node int
	dist int64
}

// nodePQ is a min-heap of nodeItem ordered by dist, then node index, so that
// pops are deterministic under equal distances.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node < pq[j].node
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
