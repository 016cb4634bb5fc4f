package blossom

import "github.com/matchkit/blossomv/heap"

// classify (re)computes which heap, if any, edge ei belongs to, based on
// the current label and tree membership of its two current endpoints, and
// moves its heap membership there. It is called whenever ei is created and
// whenever either of its current endpoints' label or tree changes (grow,
// shrink, expand, augment).
//
// This module trades Kolmogorov's fully lazy epsilon-delta heap encoding
// for a simpler eager one: classify always inserts with the fully current
// true slack, and dual.go re-runs classify on every edge that could have
// been affected after each epsilon change (see refreshEdgeSet).
// This is asymptotically weaker — O(n) work per dual update instead of
// O(1) — but far easier to get right without a compiler to check pointer
// and index arithmetic against.
func (s *State) classify(ei int) {
	e := &s.edges[ei]
	if e.heapHandle != nil {
		_ = e.heapHandle.Delete()
		e.heapHandle = nil
	}
	if !e.linked {
		return
	}

	u, v := e.head[0], e.head[1]
	nu, nv := &s.nodes[u], &s.nodes[v]
	slack := s.trueSlack(ei)

	switch {
	case nu.label == labelFree && nv.label == labelFree:
		return

	case nu.label == labelPlus && nv.label == labelFree:
		s.insertPlusInf(ei, nu.treeIdx, slack)
	case nv.label == labelPlus && nu.label == labelFree:
		s.insertPlusInf(ei, nv.treeIdx, slack)

	case nu.label == labelPlus && nv.label == labelPlus:
		if nu.treeIdx == nv.treeIdx {
			h, err := s.trees[nu.treeIdx].heapPlusPlus.Insert(slack, ei)
			if err == nil {
				e.heapHandle = h
			}
		} else {
			teIdx := s.getOrCreateTreeEdge(nu.treeIdx, nv.treeIdx)
			h, err := s.treeEdges[teIdx].heapPlusPlus.Insert(slack, ei)
			if err == nil {
				e.heapHandle = h
			}
		}

	case nu.label == labelPlus && nv.label == labelMinus:
		s.insertPlusMinus(ei, u, v, slack)
	case nv.label == labelPlus && nu.label == labelMinus:
		s.insertPlusMinus(ei, v, u, slack)

	default:
		// Both minus (same or different tree), or minus/free: not a
		// candidate edge for any primal or dual event under the three
		// strategies this module implements.
	}
}

func (s *State) insertPlusInf(ei, treeIdx int, slack float64) {
	h, err := s.trees[treeIdx].heapPlusInf.Insert(slack, ei)
	if err == nil {
		s.edges[ei].heapHandle = h
	}
}

// insertPlusMinus handles a (+,-) edge where plusNode is the "+" endpoint
// and minusNode is the "-" endpoint. If they share a tree, the edge is a
// tree edge already accounted for by the alternating structure itself and
// is not placed in any heap. Otherwise it goes into the appropriate side
// of the cross-tree treeEdge's heapPlusMinus.
func (s *State) insertPlusMinus(ei, plusNode, minusNode int, slack float64) {
	tp := s.nodes[plusNode].treeIdx
	tm := s.nodes[minusNode].treeIdx
	if tp == tm {
		return
	}
	teIdx := s.getOrCreateTreeEdge(tp, tm)
	te := s.treeEdges[teIdx]
	side := te.sideOf(tp)
	h, err := te.heapPlusMinus[side].Insert(slack, ei)
	if err == nil {
		s.edges[ei].heapHandle = h
	}
}

// refreshEdgeSet drains the edge heaps of the supplied trees (their own
// heapPlusInf and heapPlusPlus, and every treeEdge heap touching them;
// heapMinusBlossom is left to refreshMinusBlossomHeaps) and reclassifies each
// edge found, so stored keys catch up with the epsilon change dual.go just
// applied to those trees.
func (s *State) refreshEdgeSet(treeIdxs []int) {
	seenTreeEdges := make(map[int]bool)
	var edges []int

	for _, t := range treeIdxs {
		tr := s.trees[t]
		edges = append(edges, drainInts(tr.heapPlusInf)...)
		edges = append(edges, drainInts(tr.heapPlusPlus)...)
		for _, teIdx := range s.liveTreeEdges(t) {
			if seenTreeEdges[teIdx] {
				continue
			}
			seenTreeEdges[teIdx] = true
			te := s.treeEdges[teIdx]
			edges = append(edges, drainInts(te.heapPlusPlus)...)
			edges = append(edges, drainInts(te.heapPlusMinus[0])...)
			edges = append(edges, drainInts(te.heapPlusMinus[1])...)
		}
	}
	for _, ei := range edges {
		s.classify(ei)
	}
}

// drainInts empties h, returning every value it held, and leaves it ready
// for fresh inserts.
func drainInts(h *heap.Heap[int]) []int {
	var out []int
	for {
		hd, err := h.DeleteMin()
		if err != nil || hd == nil {
			break
		}
		out = append(out, hd.Value())
	}
	return out
}
