package network

// NumNodes returns N + k + 1.
func (nw *Network) NumNodes() int { return len(nw.demand) }

// Demand returns the demand of node v (−1 for points).
func (nw *Network) Demand(v int) int64 { return nw.demand[v] }

// NumArcs returns N·k + k.
func (nw *Network) NumArcs() int { return len(nw.arcs) }

// Arc returns the endpoints, capacity and cost of arc i.
func (nw *Network) Arc(i int) (from, to int, capacity, cost int64) {
	a := nw.arcs[i]
	return a.From, a.To, a.Capacity, a.Cost
}

// ArcAt returns arc i as a value.
func (nw *Network) ArcAt(i int) Arc { return nw.arcs[i] }

// NumPoints returns N.
func (nw *Network) NumPoints() int { return nw.n }

// NumClusters returns k.
func (nw *Network) NumClusters() int { return nw.k }

// PointNode returns the node index of point i.
func (nw *Network) PointNode(i int) int { return i }

// ClusterNode returns the node index of cluster j.
func (nw *Network) ClusterNode(j int) int { return nw.n + j }

// OverflowNode returns the node index of the overflow sink.
func (nw *Network) OverflowNode() int { return nw.n + nw.k }

// PointArc returns the arc index of point i → cluster j.
func (nw *Network) PointArc(i, j int) int { return i*nw.k + j }

// OverflowArc returns the arc index of cluster j → overflow.
func (nw *Network) OverflowArc(j int) int { return nw.n*nw.k + j }

// Kind classifies node v.
func (nw *Network) Kind(v int) NodeKind {
	switch {
	case v < nw.n:
		return PointNode
	case v < nw.n+nw.k:
		return ClusterNode
	default:
		return OverflowNode
	}
}

// CostScale returns the distance multiplier actually applied. It is below the
// requested scale when Build had to lower it to avoid overflow.
func (nw *Network) CostScale() float64 { return nw.scale }

// Stats summarizes the network.
func (nw *Network) Stats() Stats {
	return Stats{
		Points:    nw.n,
		Clusters:  nw.k,
		Nodes:     len(nw.demand),
		Arcs:      len(nw.arcs),
		Supply:    int64(nw.n),
		Overflow:  nw.overflow,
		MaxCost:   nw.maxCost,
		CostScale: nw.scale,
	}
}
