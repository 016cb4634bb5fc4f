package blossom

// walkTree calls fn for every node currently in the alternating tree rooted
// at root (root included), via a depth-first traversal of the tree-children
// rings. It is used by augment to sweep an entire consumed tree back to
// "free" and by shrink/expand to move subtrees between parents.
func (s *State) walkTree(root int, fn func(v int)) {
	stack := []int{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(v)
		s.forEachTreeChild(v, func(c int) { stack = append(stack, c) })
	}
}

// reclassifyIncident reclassifies every edge currently linked into v's
// incident lists, following a label or tree change on v.
func (s *State) reclassifyIncident(v int) {
	s.forEachIncident(v, func(ei, _ int) { s.classify(ei) })
}

// cashIn freezes v's current true dual into its base dual field, so a
// subsequent label/tree change does not silently move the value.
func (s *State) cashIn(v int) {
	s.nodes[v].dual = s.trueDual(v)
}

// removeMinusHeapEntry deletes v's heapMinusBlossom membership, if any.
func (s *State) removeMinusHeapEntry(v int) {
	n := &s.nodes[v]
	if n.heapHandle != nil {
		_ = n.heapHandle.Delete()
		n.heapHandle = nil
	}
}

func (s *State) treeSize(t int) int {
	count := 0
	s.walkTree(s.trees[t].root, func(int) { count++ })
	return count
}

// grow attaches the free endpoint of a tight (+, free) edge, and that
// endpoint's matched partner, as new "-"/"+" leaves of the tree the "+"
// endpoint already belongs to.
func (s *State) grow(ei int) {
	e := &s.edges[ei]
	u, v := e.head[0], e.head[1]
	if s.nodes[v].label == labelPlus {
		u, v = v, u
	}
	t := s.nodes[u].treeIdx

	s.nodes[v].label = labelMinus
	s.nodes[v].treeIdx = t
	s.nodes[v].epsAtJoin = s.trees[t].eps
	s.cashIn(v)
	s.addTreeChild(u, v, ei)
	s.reclassifyIncident(v)
	if s.nodes[v].isBlossom {
		h, err := s.trees[t].heapMinusBlossom.Insert(s.trueDual(v), v)
		if err == nil {
			s.nodes[v].heapHandle = h
		}
	}

	me := s.nodes[v].matched
	w := s.edges[me].opposite(v)
	s.nodes[w].label = labelPlus
	s.nodes[w].treeIdx = t
	s.nodes[w].epsAtJoin = s.trees[t].eps
	s.cashIn(w)
	s.addTreeChild(v, w, me)
	s.reclassifyIncident(w)

	s.stats.Grows++
	if s.opts.OnPrimalOp != nil {
		s.opts.OnPrimalOp(OpGrow, s.treeSize(t))
	}
}

// exposeSubtree walks the subtree rooted at v (v included), clearing every
// node's label/tree membership and heap entries so it becomes ordinary
// "free, matched" state, ready to leave the forest for good.
func (s *State) exposeSubtree(v int) {
	s.walkTree(v, func(n int) {
		s.cashIn(n)
		s.removeMinusHeapEntry(n)
		s.nodes[n].label = labelFree
		s.nodes[n].treeIdx = -1
		s.nodes[n].firstTreeChild = -1
		s.nodes[n].parentEdge = -1
	})
	s.walkTree(v, func(n int) { s.reclassifyIncident(n) })
}

// flipAugmentingPath walks from a leaf ("+") node up to its tree root,
// re-pointing every node's matched edge one link further up the path so
// that startEdge ends up matching leaf, and the old alternating pattern of
// tree edges becomes the new matching along the path.
func (s *State) flipAugmentingPath(leaf, startEdge int) int {
	cur := leaf
	newMatch := startEdge
	t := s.nodes[leaf].treeIdx
	root := s.trees[t].root
	for cur != root {
		p := s.edges[s.nodes[cur].parentEdge].opposite(cur) // "-" parent
		s.nodes[cur].matched = newMatch
		grandParentEdge := s.nodes[p].parentEdge
		gp := s.edges[grandParentEdge].opposite(p) // "+" grandparent, or root
		s.nodes[p].matched = grandParentEdge
		newMatch = grandParentEdge
		cur = gp
	}
	s.nodes[root].matched = newMatch
	return root
}

// augment consumes edge ei — a tight (+, +) edge crossing two distinct
// trees — turning both trees into a single stretch of new matched edges
// and exposing every non-path node in either tree back to "free".
func (s *State) augment(ei int) {
	e := &s.edges[ei]
	u, v := e.head[0], e.head[1]
	tu, tv := s.nodes[u].treeIdx, s.nodes[v].treeIdx

	rootU := s.flipAugmentingPath(u, ei)
	rootV := s.flipAugmentingPath(v, ei)

	s.removeTreeSibling(rootU, &s.rootHead)
	s.removeTreeSibling(rootV, &s.rootHead)

	s.exposeSubtree(rootU)
	s.exposeSubtree(rootV)

	s.destroyTree(tu)
	s.destroyTree(tv)

	s.stats.Augments++
	if s.opts.OnPrimalOp != nil {
		s.opts.OnPrimalOp(OpAugment, 0)
	}
}

// ringAncestors returns the chain of nodes from v up to (and including) the
// tree root, via parentEdge, together with the parentEdge used at each
// step (edgeChain[i] connects chain[i] to chain[i+1]).
func (s *State) ringAncestors(v int) (chain []int, edgeChain []int) {
	cur := v
	for {
		chain = append(chain, cur)
		pe := s.nodes[cur].parentEdge
		if pe == -1 {
			break
		}
		edgeChain = append(edgeChain, pe)
		cur = s.edges[pe].opposite(cur)
	}
	return chain, edgeChain
}

// shrink folds the odd cycle closed by tight (+, +) edge ei — both
// endpoints in the same tree — into one new blossom pseudonode.
func (s *State) shrink(ei int) {
	e := &s.edges[ei]
	u, v := e.head[0], e.head[1]
	t := s.nodes[u].treeIdx

	chainU, edgesU := s.ringAncestors(u)
	chainV, edgesV := s.ringAncestors(v)
	posInU := make(map[int]int, len(chainU))
	for i, n := range chainU {
		posInU[n] = i
	}
	lcaIdxU := -1
	lcaIdxV := -1
	for i, n := range chainV {
		if j, ok := posInU[n]; ok {
			lcaIdxU, lcaIdxV = j, i
			break
		}
	}
	base := chainU[lcaIdxU]

	// Assemble the cycle: base, then up-path from u to base (exclusive of
	// base), then down-path from base to v (exclusive of base), then edge
	// ei closes the ring back to u.
	var ring []int
	var ringEdges []int // ringEdges[i] connects ring[i] to ring[i+1 mod len]
	ring = append(ring, chainU[:lcaIdxU]...) // u ... child-of-base
	ring = append(ring, base)
	for i := lcaIdxV - 1; i >= 0; i-- {
		ring = append(ring, chainV[i])
	}
	ringEdges = append(ringEdges, edgesU[:lcaIdxU]...)
	for i := lcaIdxV - 1; i >= 0; i-- {
		ringEdges = append(ringEdges, edgesV[i])
	}
	ringEdges = append(ringEdges, ei)

	b := s.newBlossomNode()
	nb := &s.nodes[b]
	nb.label = labelPlus
	nb.treeIdx = t
	nb.dual = 0
	nb.epsAtJoin = s.trees[t].eps

	oldParentEdge := s.nodes[base].parentEdge
	wasRoot := oldParentEdge == -1
	nb.parentEdge = oldParentEdge
	nb.matched = oldParentEdge

	memberSet := make(map[int]bool, len(ring))
	for _, m := range ring {
		memberSet[m] = true
	}

	for i, m := range ring {
		s.cashIn(m) // freeze dual before isOuter flips false and eps stops applying
		mn := &s.nodes[m]
		mn.blossomParent = b
		mn.blossomGrandparent = b
		mn.isOuter = false
		mn.blossomSibling = ring[(i+1)%len(ring)]
		mn.blossomBaseEdge = ringEdges[i]

		s.forEachTreeChild(m, func(child int) {
			if memberSet[child] {
				return
			}
			pe := s.nodes[child].parentEdge
			s.moveEdgeTail(pe, m, b)
			s.removeTreeSibling(child, &mn.firstTreeChild)
			s.addTreeChild(b, child, pe)
		})

		s.forEachIncident(m, func(edgeIdx, _ int) {
			if edgeIdx == ei {
				return
			}
			other := s.edges[edgeIdx].opposite(m)
			if memberSet[other] {
				return
			}
			s.moveEdgeTail(edgeIdx, m, b)
		})

		if mn.isBlossom {
			s.removeMinusHeapEntry(m)
		}
	}

	for _, e2 := range ringEdges {
		s.edges[e2].linked = false
		s.classify(e2)
	}

	if wasRoot {
		s.removeTreeSibling(base, &s.rootHead)
		s.linkSibling(&s.rootHead, b)
		s.trees[t].root = b
	} else {
		parent := s.edges[oldParentEdge].opposite(base)
		s.removeTreeSibling(base, &s.nodes[parent].firstTreeChild)
		s.addTreeChild(parent, b, oldParentEdge)
	}

	s.reclassifyIncident(b)
	s.stats.Shrinks++
	if s.opts.OnPrimalOp != nil {
		s.opts.OnPrimalOp(OpShrink, s.treeSize(t))
	}
}

// directChildOf climbs v's blossomParent chain until it finds the node
// whose blossomParent is exactly b — the direct ring member of b that
// (possibly transitively) contains v.
func (s *State) directChildOf(v, b int) int {
	cur := v
	for s.nodes[cur].blossomParent != b {
		cur = s.nodes[cur].blossomParent
	}
	return cur
}

// blossomRing reconstructs b's member list in cycle order starting from
// start, following blossomSibling, together with the edge connecting each
// consecutive pair (ringEdges[i] connects ring[i] and ring[(i+1)%n]).
func (s *State) blossomRing(start int) (ring []int, ringEdges []int) {
	cur := start
	for {
		ring = append(ring, cur)
		ringEdges = append(ringEdges, s.nodes[cur].blossomBaseEdge)
		cur = s.nodes[cur].blossomSibling
		if cur == start {
			break
		}
	}
	return ring, ringEdges
}

// expand dissolves blossom b (currently labeled "-", true dual at zero)
// back into its ring members: the arc between the member reconnecting to
// b's tree parent and the member reconnecting to b's matched child
// re-enters the tree with alternating labels; the rest of the ring is
// matched off in consecutive pairs and leaves the tree entirely.
func (s *State) expand(b int) {
	nb := &s.nodes[b]
	t := nb.treeIdx
	pe := nb.parentEdge
	cme := nb.matched
	parent := s.edges[pe].opposite(b)

	entryOriginal := s.edges[pe].currentOriginal(b)
	exitOriginal := s.edges[cme].currentOriginal(b)
	entry := s.directChildOf(entryOriginal, b)
	exit := s.directChildOf(exitOriginal, b)

	ring, ringEdges := s.blossomRing(entry)
	n := len(ring)
	exitPos := -1
	for i, m := range ring {
		if m == exit {
			exitPos = i
			break
		}
	}
	if exitPos < 0 {
		exitPos = 0
	}

	s.removeMinusHeapEntry(b)
	s.moveEdgeTail(pe, b, entry)
	s.moveEdgeTail(cme, b, exit)

	for _, m := range ring {
		s.nodes[m].isOuter = true
		s.nodes[m].blossomParent = -1
		s.nodes[m].blossomGrandparent = -1
		s.nodes[m].blossomSibling = -1
	}

	// The arc from entry (index 0) to exit (index exitPos) re-enters the
	// tree, alternating labels "-", "+", "-", ... starting and ending on
	// "-": entry replaces b's upward connection, exit replaces b's
	// downward (matched) connection.
	lbl := labelMinus
	prevEdge := pe
	prev := parent
	for i := 0; i <= exitPos; i++ {
		m := ring[i]
		s.nodes[m].label = lbl
		s.nodes[m].treeIdx = t
		s.nodes[m].epsAtJoin = s.trees[t].eps
		s.nodes[m].parentEdge = prevEdge
		s.addTreeChild(prev, m, prevEdge)
		switch {
		case m == exit:
			s.nodes[m].matched = cme
			s.forEachTreeChild(b, func(child int) {
				s.addTreeChild(m, child, s.nodes[child].parentEdge)
			})
		case lbl == labelMinus:
			s.nodes[m].matched = ringEdges[i]
		}
		if i < exitPos {
			prevEdge = ringEdges[i]
		}
		prev = m
		if lbl == labelMinus {
			lbl = labelPlus
		} else {
			lbl = labelMinus
		}
	}

	// The remaining arc (exit+1 .. entry-1, wrapping) is matched off in
	// consecutive pairs using the ring's own edges and leaves the tree
	// entirely.
	for i := exitPos + 1; i < n; i += 2 {
		a := ring[i]
		bnode := ring[(i+1)%n]
		medge := ringEdges[i]
		s.nodes[a].matched = medge
		s.nodes[bnode].matched = medge
		s.nodes[a].label = labelFree
		s.nodes[bnode].label = labelFree
		s.nodes[a].treeIdx = -1
		s.nodes[bnode].treeIdx = -1
	}

	for _, m := range ring {
		s.reclassifyIncident(m)
		if s.nodes[m].isBlossom && s.nodes[m].label == labelMinus {
			h, err := s.trees[t].heapMinusBlossom.Insert(s.trueDual(m), m)
			if err == nil {
				s.nodes[m].heapHandle = h
			}
		}
	}

	s.stats.Expands++
	if s.opts.OnPrimalOp != nil {
		s.opts.OnPrimalOp(OpExpand, s.treeSize(t))
	}
}
