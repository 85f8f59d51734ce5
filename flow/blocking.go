package flow

// blocking pushes a blocking flow through the admissible subgraph: residual
// arcs with positive capacity and zero reduced cost. Every s→t path there is a
// shortest path, so augmenting along it keeps the flow cost-optimal. The
// level-graph + pointer-DFS scheme is Dinic's.
type blocking struct {
	r     *residual
	s, t  int
	pot   []int64
	level []int
	iter  []int
}

// tight reports whether arc id (leaving u) belongs to the admissible subgraph.
func (b *blocking) tight(u, id int) bool {
	return b.r.cap[id] > 0 && b.r.cost[id]+b.pot[u]-b.pot[b.r.to[id]] == 0
}

// levels builds BFS levels over tight arcs and reports whether t is reachable.
//
// Complexity: O(V + E).
func (b *blocking) levels() bool {
	for v := range b.level {
		b.level[v] = -1
	}
	b.level[b.s] = 0
	queue := []int{b.s}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, id := range b.r.head[u] {
			v := b.r.to[id]
			if b.level[v] < 0 && b.tight(u, id) {
				b.level[v] = b.level[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return b.level[b.t] >= 0
}

// run repeats level construction and DFS pushes until t is cut off from s in
// the admissible subgraph. It returns the units pushed and the number of
// augmenting paths used.
func (b *blocking) run() (pushed int64, paths int) {
	for b.levels() {
		for v := range b.iter {
			b.iter[v] = 0
		}
		for {
			f := b.dfs(b.s, inf)
			if f == 0 {
				break
			}
			pushed += f
			paths++
		}
	}

	return pushed, paths
}

// dfs pushes up to avail units from u toward t along the level graph and
// returns the amount actually sent. iter[u] remembers the first arc of u that
// may still carry flow, so dead ends are never rescanned within a level round.
func (b *blocking) dfs(u int, avail int64) int64 {
	if u == b.t {
		return avail
	}
	for ; b.iter[u] < len(b.r.head[u]); b.iter[u]++ {
		id := b.r.head[u][b.iter[u]]
		v := b.r.to[id]
		if b.level[v] != b.level[u]+1 || !b.tight(u, id) {
			continue
		}
		send := min(avail, b.r.cap[id])
		if f := b.dfs(v, send); f > 0 {
			b.r.push(id, f)
			return f
		}
	}

	return 0
}
