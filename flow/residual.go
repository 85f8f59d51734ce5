package flow

// residual is an index-based residual network. Arcs are stored in pairs:
// arc id is the forward arc and id^1 its reverse, so the flow on a forward
// arc is always the residual capacity of its partner.
type residual struct {
	head [][]int // node → residual arc ids, in insertion order
	to   []int
	cap  []int64
	cost []int64
}

func newResidual(nodes, arcHint int) *residual {
	return &residual{
		head: make([][]int, nodes),
		to:   make([]int, 0, 2*arcHint),
		cap:  make([]int64, 0, 2*arcHint),
		cost: make([]int64, 0, 2*arcHint),
	}
}

// addArc inserts u→v with capacity c and cost w plus its zero-capacity
// reverse v→u with cost -w, and returns the forward arc id.
func (r *residual) addArc(u, v int, c, w int64) int {
	id := len(r.to)
	r.to = append(r.to, v, u)
	r.cap = append(r.cap, c, 0)
	r.cost = append(r.cost, w, -w)
	r.head[u] = append(r.head[u], id)
	r.head[v] = append(r.head[v], id+1)

	return id
}

// push moves f units along arc id.
func (r *residual) push(id int, f int64) {
	r.cap[id] -= f
	r.cap[id^1] += f
}

// flowOn returns the flow carried by forward arc id.
func (r *residual) flowOn(id int) int64 { return r.cap[id^1] }

// buildResidual validates nw and converts it into a residual network with a
// super-source s (feeding every supply node) and super-sink t (draining every
// demand node). It returns the residual, the forward arc id of every original
// arc, s, t and the total supply that must be routed.
//
// Steps:
//  1. Sum demands; a non-zero sum can never be balanced → ErrInfeasible.
//  2. Copy arcs in index order, rejecting bad endpoints, negative capacity and
//     negative cost with ArcError. Self-loops are kept but never carry flow
//     (they only close a zero-gain cycle).
//  3. Attach s→v (supply) and v→t (demand) arcs at zero cost.
//
// Complexity: O(V + E) time and memory.
func buildResidual(nw Network) (r *residual, arcID []int, s, t int, supply int64, err error) {
	n := nw.NumNodes()
	m := nw.NumArcs()

	var balance int64
	for v := 0; v < n; v++ {
		d := nw.Demand(v)
		balance += d
		if d < 0 {
			supply -= d
		}
	}
	if balance != 0 {
		return nil, nil, 0, 0, 0, infeasiblef("node demands sum to %d, want 0", balance)
	}

	s, t = n, n+1
	r = newResidual(n+2, m+n)
	arcID = make([]int, m)
	for i := 0; i < m; i++ {
		from, to, c, w := nw.Arc(i)
		if from < 0 || from >= n || to < 0 || to >= n {
			return nil, nil, 0, 0, 0, ArcError{Index: i, From: from, To: to, Capacity: c, Cost: w, Reason: "endpoint out of range"}
		}
		if c < 0 {
			return nil, nil, 0, 0, 0, ArcError{Index: i, From: from, To: to, Capacity: c, Cost: w, Reason: "negative capacity"}
		}
		if w < 0 {
			return nil, nil, 0, 0, 0, ArcError{Index: i, From: from, To: to, Capacity: c, Cost: w, Reason: "negative cost"}
		}
		arcID[i] = r.addArc(from, to, c, w)
	}
	for v := 0; v < n; v++ {
		switch d := nw.Demand(v); {
		case d < 0:
			r.addArc(s, v, -d, 0)
		case d > 0:
			r.addArc(v, t, d, 0)
		}
	}

	return r, arcID, s, t, supply, nil
}
