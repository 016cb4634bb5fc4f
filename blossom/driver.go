package blossom

import (
	"context"
	"time"

	"github.com/matchkit/blossomv/graph"
)

// Matching is the result of a successful Solve: every vertex paired with
// exactly one partner, and the total weight of the pairing edges under the
// caller's chosen Objective (i.e. already un-negated for Maximize).
type Matching struct {
	// Pairs holds one entry per matched edge — len(Pairs) == n/2.
	Pairs [][2]string
	// Weight is the sum of the original (caller-facing) edge weights of
	// every pair.
	Weight float64
	// Duals reports each vertex's dual variable y_v, in the caller's
	// Objective sign convention. It satisfies, for every edge (u,v) with
	// original weight w: w >= y_u + y_v (Minimize) or w <= y_u + y_v
	// (Maximize), modulo Epsilon and modulo the blossom inequalities this
	// simplified report does not carry (see CheckDualFeasibility).
	Duals map[string]float64

	Stats Stats

	s *State
}

// Solve computes a minimum- or maximum-weight perfect matching of g
// according to opts. g must have an even, positive number of vertices; a
// self-loop is ignored, a vertex with no incident edges makes a perfect
// matching impossible.
func Solve(g graph.Graph, opts ...Option) (*Matching, error) {
	options := DefaultOptions()
	for _, o := range opts {
		o(&options)
	}
	if options.Ctx == nil {
		options.Ctx = context.Background()
	}

	overallStart := time.Now()
	initStart := time.Now()
	s, err := build(g, options)
	if err != nil {
		return nil, err
	}
	s.stats.InitDuration = time.Since(initStart)

	if err := s.run(); err != nil {
		return nil, err
	}

	s.finish()
	m := s.extractMatching()
	s.stats.TotalDuration = time.Since(overallStart)
	m.Stats = s.stats
	m.s = s
	return m, nil
}

// run executes the main primal/dual loop to completion: every tree is
// eventually consumed by augment, or a stall (no primal progress and no
// active tree able to advance its epsilon further) is reported as
// NoPerfectMatchingError.
func (s *State) run() error {
	return s.runRounds(0, true)
}

// runRounds runs up to maxRounds primal/dual rounds (0 means unlimited),
// stopping early once no tree remains active. A stall — a round with no
// primal progress whose fallback dual update also fails to advance any
// tree — is reported as NoPerfectMatchingError when stallIsError is true;
// otherwise it simply ends the call, leaving whatever tree/blossom state
// exists for a later call (or the main loop) to continue from. This second
// mode is what InitFractional uses: a bounded prefix of genuine primal/dual
// work is a warm start in its own right, not just a shortcut.
func (s *State) runRounds(maxRounds int, stallIsError bool) error {
	for round := 0; maxRounds <= 0 || round < maxRounds; round++ {
		if err := s.opts.Ctx.Err(); err != nil {
			return err
		}
		if len(s.activeTrees()) == 0 {
			return nil
		}

		primalStart := time.Now()
		if s.opts.UpdateDualsBefore {
			dualStart := time.Now()
			s.dualUpdate()
			s.stats.DualDuration += time.Since(dualStart)
		}
		progressedPrimal := s.runPrimalPhase()
		s.stats.PrimalDuration += time.Since(primalStart)

		if s.opts.UpdateDualsAfter {
			dualStart := time.Now()
			s.dualUpdate()
			s.stats.DualDuration += time.Since(dualStart)
		}

		if len(s.activeTrees()) == 0 {
			s.stats.Rounds++
			return nil
		}
		if !progressedPrimal {
			dualStart := time.Now()
			ok := s.dualUpdate()
			s.stats.DualDuration += time.Since(dualStart)
			if !ok {
				if !stallIsError {
					return nil
				}
				active := s.activeTrees()
				return &NoPerfectMatchingError{Eps: s.trees[active[0]].eps}
			}
		}
		if err := s.checkEpsRunaway(); err != nil {
			return err
		}
		s.stats.Rounds++
	}
	return nil
}

// checkEpsRunaway reports NoPerfectMatchingError the moment any active
// tree's epsilon crosses NoPerfectMatchingThreshold. A well-formed input
// with a perfect matching never needs epsilon this large — every dual
// update strategy bounds its growth by a real edge or blossom slack, so
// crossing the threshold means those slacks kept being cheaper than
// whatever this tree still needs, which is exactly what an unmatchable
// component looks like. Without this check an adversarial or malformed
// weight set could otherwise grow epsilon without bound across many
// rounds, either looping past any practical stall detection or eventually
// losing precision as it approaches float64's range.
func (s *State) checkEpsRunaway() error {
	for _, t := range s.activeTrees() {
		if s.trees[t].eps > NoPerfectMatchingThreshold {
			return &NoPerfectMatchingError{Eps: s.trees[t].eps}
		}
	}
	return nil
}

// runPrimalPhase applies zero-slack primal operations (augment, shrink,
// expand, grow, in that priority order) until none remain at the current
// epsilon frontier. It returns whether it applied at least one operation.
func (s *State) runPrimalPhase() bool {
	any := false
	for {
		if ei, ok := s.findAugmentCandidate(); ok {
			s.augment(ei)
			any = true
			continue
		}
		if ei, ok := s.findShrinkCandidate(); ok {
			s.shrink(ei)
			any = true
			continue
		}
		if b, ok := s.findExpandCandidate(); ok {
			s.expand(b)
			any = true
			continue
		}
		if ei, ok := s.findGrowCandidate(); ok {
			s.grow(ei)
			any = true
			continue
		}
		break
	}
	return any
}

func (s *State) findAugmentCandidate() (int, bool) {
	for _, te := range s.treeEdges {
		if te.removed || !s.trees[te.trees[0]].active || !s.trees[te.trees[1]].active {
			continue
		}
		hd, err := te.heapPlusPlus.FindMin()
		if err != nil || hd == nil {
			continue
		}
		if s.trueSlack(hd.Value()) <= Epsilon {
			return hd.Value(), true
		}
	}
	return 0, false
}

func (s *State) findShrinkCandidate() (int, bool) {
	for _, t := range s.activeTrees() {
		hd, err := s.trees[t].heapPlusPlus.FindMin()
		if err != nil || hd == nil {
			continue
		}
		if s.trueSlack(hd.Value()) <= Epsilon {
			return hd.Value(), true
		}
	}
	return 0, false
}

func (s *State) findExpandCandidate() (int, bool) {
	for _, t := range s.activeTrees() {
		hd, err := s.trees[t].heapMinusBlossom.FindMin()
		if err != nil || hd == nil {
			continue
		}
		if s.trueDual(hd.Value()) <= Epsilon {
			return hd.Value(), true
		}
	}
	return 0, false
}

func (s *State) findGrowCandidate() (int, bool) {
	for _, t := range s.activeTrees() {
		hd, err := s.trees[t].heapPlusInf.FindMin()
		if err != nil || hd == nil {
			continue
		}
		if s.trueSlack(hd.Value()) <= Epsilon {
			return hd.Value(), true
		}
	}
	return 0, false
}

// finish flattens every surviving outer blossom back into a concrete
// matching among its original members, without going through the grow
// tree machinery expand uses (there is no live tree left at this point).
func (s *State) finish() {
	for v := 0; v < len(s.nodes); v++ {
		if s.nodes[v].isOuter {
			s.resolveOuterMatch(v)
		}
	}
}

// resolveOuterMatch, given an outer node v whose matched edge is already
// correct at v's own nesting level, recurses into v (if v is a blossom)
// to set a correct matched edge on every one of v's members, all the way
// down to original vertices.
func (s *State) resolveOuterMatch(v int) {
	if !s.nodes[v].isBlossom {
		return
	}
	me := s.nodes[v].matched
	entryOriginal := s.edges[me].currentOriginal(v)
	entry := s.directChildOf(entryOriginal, v)
	ring, ringEdges := s.blossomRing(entry)
	n := len(ring)

	s.nodes[entry].matched = me
	for i := 1; i < n; i += 2 {
		a, c := ring[i], ring[(i+1)%n]
		pe := ringEdges[i]
		s.nodes[a].matched = pe
		s.nodes[c].matched = pe
	}
	for _, m := range ring {
		s.resolveOuterMatch(m)
	}
}

// extractMatching reads off the final vertex-level pairing and its weight
// in the caller's original objective sign, restoring the common prelude's
// shift on the way out.
func (s *State) extractMatching() *Matching {
	m := &Matching{Duals: make(map[string]float64, s.numOriginal)}
	seen := make([]bool, s.numOriginal)
	for v := 0; v < s.numOriginal; v++ {
		// trueDual folds in the tree's lazily-accumulated epsilon (raw
		// .dual alone is stale for any vertex whose tree ever grew);
		// shift/2 restores half the common-prelude shift to each endpoint
		// so a matched pair's two reported duals still sum to that edge's
		// original (unshifted) weight.
		m.Duals[s.idOf[v]] = s.objSign * (s.trueDual(v) + s.shift/2)
		if seen[v] {
			continue
		}
		pe := s.nodes[v].matched
		other := s.edges[pe].matchedPartner(v)
		seen[v] = true
		seen[other] = true
		m.Pairs = append(m.Pairs, [2]string{s.idOf[v], s.idOf[other]})
		// e.slack is the internal, objSign-flipped, shift-subtracted
		// weight fixed at creation (never mutated in place — trueSlack
		// subtracts the dual adjustment on the fly instead); adding the
		// shift back and flipping the sign once recovers the caller's
		// original edge weight exactly.
		m.Weight += s.objSign * (s.edges[pe].slack + s.shift)
	}
	return m
}

// matchedPartner returns e's original endpoint other than v, using the
// immutable headOriginal fields (e.head may have been redirected many
// times by shrink/expand and no longer names v directly).
func (e *edge) matchedPartner(v int) int {
	if e.headOriginal[0] == v {
		return e.headOriginal[1]
	}
	return e.headOriginal[0]
}

// CheckDualFeasibility verifies, for every original edge, that its slack
// under the reported dual solution (m.Duals, which callers may perturb
// before calling this) is non-negative (Minimize) within Epsilon. It does
// not verify the blossom (odd-set) inequalities the full LP relaxation
// also requires — doing so exactly would mean re-deriving every blossom
// ever formed during the solve, which this diagnostic intentionally does
// not attempt.
func (m *Matching) CheckDualFeasibility() error {
	if m.s == nil {
		return nil
	}
	s := m.s
	for i := range s.edges {
		e := &s.edges[i]
		u, v := e.headOriginal[0], e.headOriginal[1]
		du := s.objSign * m.Duals[s.idOf[u]]
		dv := s.objSign * m.Duals[s.idOf[v]]
		slack := e.slack + s.shift - du - dv
		if slack < -Epsilon {
			return &NoPerfectMatchingError{Eps: -slack}
		}
	}
	return nil
}

// TestOptimality returns the dual objective value (sum of vertex duals in
// m.Duals — which callers may perturb before calling this, e.g. to verify
// the check actually catches infeasibility — plus each surviving blossom's
// own contribution, weighted by half its odd size) and whether it matches
// the reported matching weight within Epsilon, which by LP duality
// certifies optimality.
func (m *Matching) TestOptimality() (float64, bool) {
	if m.s == nil {
		return 0, len(m.Pairs) == 0
	}
	s := m.s
	dualObjective := 0.0
	for v := 0; v < s.numOriginal; v++ {
		dualObjective += s.objSign * m.Duals[s.idOf[v]]
	}
	for v := s.numOriginal; v < len(s.nodes); v++ {
		if s.nodes[v].dual == 0 {
			continue
		}
		size := len(s.blossomRingSafe(v))
		dualObjective += s.nodes[v].dual * float64((size-1)/2)
	}
	internalWeight := m.Weight * s.objSign
	return s.objSign * dualObjective, absDiff(internalWeight, dualObjective) <= 1e-6*(1+absDiff(internalWeight, 0))
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// blossomRingSafe is blossomRing guarded against a node whose ring
// pointers were never set (a plain original vertex, or a blossom that was
// fully dissolved by an earlier expand and never reused).
func (s *State) blossomRingSafe(v int) []int {
	if s.nodes[v].blossomSibling == -1 {
		return []int{v}
	}
	ring, _ := s.blossomRing(v)
	return ring
}
