package blossom

import (
	"time"

	"github.com/matchkit/blossomv/heap"
)

// heapHandle is the handle type every per-tree and per-tree-edge heap
// hands back from Insert; it is stored on the edge (or, for the "-"
// blossom-dual heap, on the node) so later operations can DecreaseKey or
// Delete it without a search.
type heapHandle = heap.Handle[int]

// Stats reports what the driver did while solving, mirroring the
// counters/durations style used elsewhere in this module's lineage.
type Stats struct {
	Grows, Augments, Shrinks, Expands int
	DualUpdates                       int
	Rounds                            int
	InitDuration                      time.Duration
	PrimalDuration                    time.Duration
	DualDuration                      time.Duration
	TotalDuration                     time.Duration
}

// State owns every mutable structure the solver touches: flat node and
// edge arrays (original vertices occupy indices [0, numOriginal), blossom
// pseudonodes are appended above that), the pool of live trees and
// tree-edges, and the bookkeeping needed to translate back to the
// caller's graph.Graph vertex IDs once a perfect matching is found.
type State struct {
	nodes []node
	edges []edge

	trees     []*tree
	treeEdges []*treeEdge
	// treeEdgeIndex maps an ordered (min,max) pair of live tree indices to
	// the treeEdges slot connecting them, so the first cross-tree edge
	// discovered between two trees creates the treeEdge and every
	// subsequent one reuses it.
	treeEdgeIndex map[[2]int]int

	numOriginal int
	rootHead    int // head of the circular ring of live tree roots, or -1

	idOf   []string       // origVertex index -> caller's vertex ID
	idxOf  map[string]int // caller's vertex ID -> origVertex index

	objSign float64 // +1 for Minimize, -1 for Maximize
	shift   float64 // constant added back to the reported total weight

	opts  Options
	stats Stats
}

func newState(n int, opts Options) *State {
	s := &State{
		numOriginal:   n,
		rootHead:      -1,
		idOf:          make([]string, n),
		idxOf:         make(map[string]int, n),
		treeEdgeIndex: make(map[[2]int]int),
		opts:          opts,
		objSign:       1,
	}
	if opts.Objective == Maximize {
		s.objSign = -1
	}
	s.nodes = make([]node, n, n*2)
	for i := 0; i < n; i++ {
		s.nodes[i] = newNode(i)
	}
	return s
}

func (s *State) addEdge(u, v int, weight float64) int {
	ei := len(s.edges)
	s.edges = append(s.edges, newEdge(u, v, weight))
	s.linkIncident(ei, 0)
	s.linkIncident(ei, 1)
	return ei
}

// newBlossomNode allocates a fresh pseudonode above the original-vertex
// range and returns its index.
func (s *State) newBlossomNode() int {
	idx := len(s.nodes)
	n := newNode(-1)
	n.isBlossom = true
	s.nodes = append(s.nodes, n)
	return idx
}

func (s *State) newTree(root int) int {
	idx := len(s.trees)
	s.trees = append(s.trees, newTree(root))
	s.linkSibling(&s.rootHead, root)
	return idx
}

// getOrCreateTreeEdge returns the treeEdge index connecting trees a and b
// (order-independent), creating it if this is the first time an edge
// crossing between them has been discovered.
func (s *State) getOrCreateTreeEdge(a, b int) int {
	key := [2]int{a, b}
	if key[0] > key[1] {
		key[0], key[1] = key[1], key[0]
	}
	if idx, ok := s.treeEdgeIndex[key]; ok {
		return idx
	}
	idx := len(s.treeEdges)
	te := newTreeEdge(key[0], key[1])
	s.treeEdges = append(s.treeEdges, te)
	s.treeEdgeIndex[key] = idx
	s.trees[key[0]].treeEdges = append(s.trees[key[0]].treeEdges, idx)
	s.trees[key[1]].treeEdges = append(s.trees[key[1]].treeEdges, idx)
	return idx
}

// destroyTree tears down a tree that augment just consumed: every
// treeEdge touching it is removed from the index (its opposite tree keeps
// the rest of its treeEdges slice, filtered lazily by liveTreeEdges), and
// the tree slot itself is marked inactive. Slots are never reused within
// one Solve call; the slice only grows.
func (s *State) destroyTree(t int) {
	tr := s.trees[t]
	for _, teIdx := range tr.treeEdges {
		te := s.treeEdges[teIdx]
		if te.removed {
			continue
		}
		te.removed = true
		delete(s.treeEdgeIndex, [2]int{min(te.trees[0], te.trees[1]), max(te.trees[0], te.trees[1])})
	}
	tr.active = false
}

func (s *State) liveTreeEdges(t int) []int {
	tr := s.trees[t]
	out := tr.treeEdges[:0:0]
	for _, idx := range tr.treeEdges {
		if !s.treeEdges[idx].removed {
			out = append(out, idx)
		}
	}
	tr.treeEdges = out
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
