package blossom

import "math"

// dualUpdate runs one pass of the configured DualUpdateStrategy, advancing
// the epsilon of one or more active trees as far as feasibility allows,
// and refreshing every heap key that growth could have invalidated
// afterwards. It reports whether any tree's epsilon actually moved.
func (s *State) dualUpdate() bool {
	switch s.opts.DualUpdateStrategy {
	case SingleTree:
		return s.dualUpdateSingleTree()
	case ConnectedComponents:
		return s.dualUpdateConnectedComponents()
	default:
		return s.dualUpdateFixedDelta()
	}
}

func (s *State) activeTrees() []int {
	var out []int
	for i, t := range s.trees {
		if t.active {
			out = append(out, i)
		}
	}
	return out
}

// treeOwnMax returns the largest delta by which t's own epsilon could grow
// without making any of t's own candidate edges/blossoms infeasible,
// ignoring cross-tree interactions.
func (s *State) treeOwnMax(t int) float64 {
	tr := s.trees[t]
	best := math.Inf(1)
	if hd, err := tr.heapPlusInf.FindMin(); err == nil && hd != nil {
		if slack := s.trueSlack(hd.Value()); slack < best {
			best = slack
		}
	}
	if hd, err := tr.heapPlusPlus.FindMin(); err == nil && hd != nil {
		if slack := s.trueSlack(hd.Value()) / 2; slack < best {
			best = slack
		}
	}
	if hd, err := tr.heapMinusBlossom.FindMin(); err == nil && hd != nil {
		if d := s.trueDual(hd.Value()); d < best {
			best = d
		}
	}
	return best
}

// dualUpdateFixedDelta advances every active tree's epsilon by the same
// amount: the largest value that keeps every tree's own heaps and every
// cross-tree (+,+) heap feasible. Cross (+,-) heaps are unaffected by a
// simultaneous equal increase (the "+" side's slack loss cancels the "-"
// side's slack gain), so they impose no cap here.
func (s *State) dualUpdateFixedDelta() bool {
	active := s.activeTrees()
	if len(active) == 0 {
		return false
	}
	delta := math.Inf(1)
	for _, t := range active {
		if m := s.treeOwnMax(t); m < delta {
			delta = m
		}
	}
	seen := make(map[int]bool)
	for _, t := range active {
		for _, teIdx := range s.liveTreeEdges(t) {
			if seen[teIdx] {
				continue
			}
			seen[teIdx] = true
			te := s.treeEdges[teIdx]
			if !s.trees[te.trees[0]].active || !s.trees[te.trees[1]].active {
				continue
			}
			if hd, err := te.heapPlusPlus.FindMin(); err == nil && hd != nil {
				if slack := s.trueSlack(hd.Value()) / 2; slack < delta {
					delta = slack
				}
			}
		}
	}
	return s.applyDelta(active, delta)
}

// dualUpdateSingleTree advances exactly one active tree's epsilon, as far
// as its own heaps and its "+" side of every cross-tree heap allow.
func (s *State) dualUpdateSingleTree() bool {
	active := s.activeTrees()
	if len(active) == 0 {
		return false
	}
	t := active[0]
	delta := s.treeOwnMax(t)
	for _, teIdx := range s.liveTreeEdges(t) {
		te := s.treeEdges[teIdx]
		side := te.sideOf(t)
		if hd, err := te.heapPlusPlus.FindMin(); err == nil && hd != nil {
			if slack := s.trueSlack(hd.Value()); slack < delta {
				delta = slack
			}
		}
		if hd, err := te.heapPlusMinus[side].FindMin(); err == nil && hd != nil {
			if slack := s.trueSlack(hd.Value()); slack < delta {
				delta = slack
			}
		}
	}
	return s.applyDelta([]int{t}, delta)
}

// dualUpdateConnectedComponents groups active trees into components joined
// only by a currently-tight cross-tree (+,-)/(-,+) edge — exactly the
// constraint that would otherwise break the instant one side moved without
// the other, so both sides are forced to advance together. A (+,+)
// cross-tree edge never joins two trees into one component (both sides
// moving together would only make it worse, not better), and a slack cross
// edge that is not yet tight imposes no such coupling either.
//
// Components are then advanced one at a time, in map-iteration order, each
// by its own largest feasible epsilon increment: bounded by its members'
// own tree heaps, by half of every (+,+) cross-tree slack against a
// not-yet-advanced tree (mirroring FixedDelta's reasoning: both sides could
// still move up to half each before this round is done), by the *entire*
// remaining (+,+) cross-tree slack against a tree whose component has
// already been advanced this round (it will not move again, so all the
// remaining room belongs to us), and by the entire remaining (+,-) slack
// against an already-advanced component on the "-" side (our own "+" side
// moving alone would otherwise drive that edge negative with no
// compensating move left to come).
func (s *State) dualUpdateConnectedComponents() bool {
	active := s.activeTrees()
	if len(active) == 0 {
		return false
	}
	parent := make(map[int]int, len(active))
	for _, t := range active {
		parent[t] = t
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, t := range active {
		for _, teIdx := range s.liveTreeEdges(t) {
			te := s.treeEdges[teIdx]
			other := te.trees[0]
			if other == t {
				other = te.trees[1]
			}
			if !s.trees[other].active {
				continue
			}
			side := te.sideOf(t)
			if hd, err := te.heapPlusMinus[side].FindMin(); err == nil && hd != nil {
				if s.trueSlack(hd.Value()) <= Epsilon {
					union(t, other)
				}
			}
		}
	}
	components := make(map[int][]int)
	for _, t := range active {
		r := find(t)
		components[r] = append(components[r], t)
	}

	fixed := make(map[int]bool, len(active))
	progressed := false
	for _, members := range components {
		memberSet := make(map[int]bool, len(members))
		for _, t := range members {
			memberSet[t] = true
		}

		delta := math.Inf(1)
		for _, t := range members {
			if m := s.treeOwnMax(t); m < delta {
				delta = m
			}
		}

		seen := make(map[int]bool)
		for _, t := range members {
			for _, teIdx := range s.liveTreeEdges(t) {
				te := s.treeEdges[teIdx]
				other := te.trees[0]
				if other == t {
					other = te.trees[1]
				}
				if !s.trees[other].active {
					continue
				}
				if memberSet[other] {
					// Both ends of this (+,+) edge are in the component
					// advancing by the same delta this round: each side
					// contributes half of the available slack.
					if seen[teIdx] {
						continue
					}
					seen[teIdx] = true
					if hd, err := te.heapPlusPlus.FindMin(); err == nil && hd != nil {
						if slack := s.trueSlack(hd.Value()) / 2; slack < delta {
							delta = slack
						}
					}
					continue
				}
				if hd, err := te.heapPlusPlus.FindMin(); err == nil && hd != nil {
					slack := s.trueSlack(hd.Value())
					if !fixed[other] {
						slack /= 2
					}
					if slack < delta {
						delta = slack
					}
				}
				if fixed[other] {
					side := te.sideOf(t)
					if hd, err := te.heapPlusMinus[side].FindMin(); err == nil && hd != nil {
						if slack := s.trueSlack(hd.Value()); slack < delta {
							delta = slack
						}
					}
				}
			}
		}

		if s.applyDelta(members, delta) {
			progressed = true
		}
		for _, t := range members {
			fixed[t] = true
		}
	}
	return progressed
}

// applyDelta raises every tree in trees by delta (if positive and finite)
// and refreshes every heap key that could now be stale. Returns whether
// anything actually advanced.
func (s *State) applyDelta(trees []int, delta float64) bool {
	if delta <= Epsilon || math.IsInf(delta, 1) {
		return false
	}
	for _, t := range trees {
		s.trees[t].eps += delta
	}
	s.refreshEdgeSet(trees)
	s.refreshMinusBlossomHeaps(trees)
	s.stats.DualUpdates++
	return true
}

// refreshMinusBlossomHeaps drains and reclassifies each affected tree's
// "-" blossom-dual heap so FindMin reflects the epsilon change just
// applied.
func (s *State) refreshMinusBlossomHeaps(trees []int) {
	for _, t := range trees {
		tr := s.trees[t]
		nodes := drainInts(tr.heapMinusBlossom)
		for _, v := range nodes {
			h, err := tr.heapMinusBlossom.Insert(s.trueDual(v), v)
			if err == nil {
				s.nodes[v].heapHandle = h
			}
		}
	}
}
