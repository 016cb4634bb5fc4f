package blossom

// edge is an original graph edge (or, after shrink, an edge whose current
// endpoints have been redirected to blossom pseudonodes). head[0]/head[1]
// are the current endpoints; headOriginal[0]/headOriginal[1] are the
// original endpoints fixed at creation time and never change — expand uses
// them to recover which original node an edge "really" touches once its
// enclosing blossoms are gone.
//
// Each side d of the edge is linked into node.first[d] of head[d] via
// next[d]/prev[d]: this is one link in the circular doubly-linked list of
// all edges currently incident to head[d]. An edge whose two endpoints
// happen to have merged into the same blossom (an internal blossom edge)
// is unlinked from both incident lists while the blossom exists and
// relinked by expand.
type edge struct {
	head         [2]int
	headOriginal [2]int
	next         [2]int
	prev         [2]int

	// slack holds the "raw" reduced cost: weight - y[headOriginal[0]] -
	// y[headOriginal[1]] with y measured at the moment the endpoints'
	// trees last had eps 0 (i.e. dual contributions from live tree growth
	// are NOT baked in here — they are added back lazily by trueSlack,
	// which is what keeps grow/dual-update from touching every edge on
	// every round).
	slack float64

	// heapHandle is non-nil while this edge sits in exactly one of a
	// tree's three heaps or a tree-edge's cross heaps; classify() keeps it
	// in sync as the edge's endpoints change label.
	heapHandle *heapHandle

	// linked is false while the edge is folded inside a single blossom
	// (both endpoints belong to the same blossom's interior) and so is not
	// part of either endpoint's current incident list.
	linked bool
}

func newEdge(u, v int, weight float64) edge {
	return edge{
		head:         [2]int{u, v},
		headOriginal: [2]int{u, v},
		slack:        weight,
		linked:       true,
	}
}

// dirFrom returns which side of e currently has head[d] == v, or -1 if v
// is not a current endpoint of e.
func (e *edge) dirFrom(v int) int {
	switch v {
	case e.head[0]:
		return 0
	case e.head[1]:
		return 1
	default:
		return -1
	}
}

// opposite returns the current endpoint of e on the other side from v.
func (e *edge) opposite(v int) int {
	d := e.dirFrom(v)
	return e.head[1-d]
}

// currentOriginal returns the original (pre-shrink) endpoint on the same
// side as v's current position — used by expand to recover which actual
// node an edge reaches once the blossom nesting it went through is
// unwound.
func (e *edge) currentOriginal(v int) int {
	d := e.dirFrom(v)
	return e.headOriginal[d]
}

// linkIncident inserts e into head[d]'s incident-edge ring at side d.
func (s *State) linkIncident(ei, d int) {
	e := &s.edges[ei]
	v := e.head[d]
	head := s.nodes[v].first[d]
	if head == -1 {
		e.next[d] = ei
		e.prev[d] = ei
		s.nodes[v].first[d] = ei
		return
	}
	tail := s.edges[head].prev[d]
	s.edges[tail].next[d] = ei
	e.prev[d] = tail
	e.next[d] = head
	s.edges[head].prev[d] = ei
}

// unlinkIncident removes e from head[d]'s incident-edge ring at side d.
func (s *State) unlinkIncident(ei, d int) {
	e := &s.edges[ei]
	v := e.head[d]
	if e.next[d] == ei {
		s.nodes[v].first[d] = -1
	} else {
		s.edges[e.prev[d]].next[d] = e.next[d]
		s.edges[e.next[d]].prev[d] = e.prev[d]
		if s.nodes[v].first[d] == ei {
			s.nodes[v].first[d] = e.next[d]
		}
	}
	e.next[d] = -1
	e.prev[d] = -1
}

// forEachIncident calls fn(edgeIndex, side) for every edge currently
// linked into v's incident lists (both direction-0 and direction-1
// memberships where v is the corresponding head), tolerating fn unlinking
// the edge currently visited: each side's list is snapshotted before fn
// runs.
func (s *State) forEachIncident(v int, fn func(ei, d int)) {
	for d := 0; d < 2; d++ {
		head := s.nodes[v].first[d]
		if head == -1 {
			continue
		}
		var list []int
		for cur := head; ; {
			list = append(list, cur)
			cur = s.edges[cur].next[d]
			if cur == head {
				break
			}
		}
		for _, ei := range list {
			fn(ei, d)
		}
	}
}

// moveEdgeTail redirects e's endpoint currently at "from" to "to" (a
// blossom being formed, or the node being restored by expand), unlinking
// it from from's incident ring and relinking it into to's, preserving the
// side index so the opposite endpoint's view of the edge is unaffected.
func (s *State) moveEdgeTail(e, from, to int) {
	d := s.edges[e].dirFrom(from)
	s.unlinkIncident(e, d)
	s.edges[e].head[d] = to
	s.linkIncident(e, d)
}

// trueSlack returns e's slack as of right now, accounting for the lazy
// epsilon accumulated by each endpoint's tree since the last time this
// edge's stored slack was refreshed. A "+" node's true dual is
// y + treeEps; a "-" node's is y - treeEps; a free node's dual never moves.
func (s *State) trueSlack(ei int) float64 {
	e := &s.edges[ei]
	adjust := 0.0
	for d := 0; d < 2; d++ {
		v := e.head[d]
		adjust += s.dualAdjust(v)
	}
	return e.slack - adjust
}

// dualAdjust returns the signed epsilon contribution currently owed to v's
// dual because of its tree membership and label: +eps for a "+" node,
// -eps for a "-" node, 0 for a free node or an unlabeled blossom.
func (s *State) dualAdjust(v int) float64 {
	n := &s.nodes[v]
	if n.treeIdx < 0 || !n.isOuter {
		return 0
	}
	delta := s.trees[n.treeIdx].eps - n.epsAtJoin
	switch n.label {
	case labelPlus:
		return delta
	case labelMinus:
		return -delta
	default:
		return 0
	}
}

// trueDual returns v's current dual variable, y_v, including its tree's
// lazily-accumulated epsilon if v is labeled.
func (s *State) trueDual(v int) float64 {
	return s.nodes[v].dual + s.dualAdjust(v)
}
