package blossom

import "github.com/matchkit/blossomv/heap"

// tree is one alternating tree of the current forest. Its root is always a
// "+"-labeled node with no matched edge into a parent (either an
// originally-free vertex, or the node exposed by the most recent
// augmenting path). eps is the amount by which every "+" node's dual has
// been lazily raised, and every "-" node's dual lazily lowered, since the
// tree was created; an augment destroys both trees it joins rather than
// resetting them.
//
// Three heaps hold candidate edges for the primal operations grow and
// shrink, keyed by their true (eps-adjusted) slack so FindMin always
// names the next event this tree could act on without this tree's dual
// having moved:
//
//   - heapPlusInf: (+, free) edges — growing this tree along the smallest
//     one is always primal-feasible once its slack hits zero.
//   - heapPlusPlus: (+, +) edges within this tree — the smallest one
//     reaching zero slack signals a shrink (if the two + endpoints are in
//     the same tree) candidate.
//   - heapMinusBlossom: "-" labeled blossoms in this tree, keyed by true
//     dual — the smallest one reaching zero signals an expand candidate.
type tree struct {
	root int
	eps  float64

	heapPlusInf      *heap.Heap[int]
	heapPlusPlus     *heap.Heap[int]
	heapMinusBlossom *heap.Heap[int]

	treeEdges []int // indices into state.treeEdges, this tree's cross-tree edges
	active    bool
}

func newTree(root int) *tree {
	return &tree{
		root:             root,
		heapPlusInf:      heap.New[int](heap.MinOrder),
		heapPlusPlus:     heap.New[int](heap.MinOrder),
		heapMinusBlossom: heap.New[int](heap.MinOrder),
		active:           true,
	}
}
