package blossom

import "github.com/matchkit/blossomv/heap"

// treeEdge groups every original-graph edge currently crossing between two
// distinct live trees, trees[0] and trees[1], into three heaps so the dual
// updater can find the tightest cross-tree constraint in O(1):
//
//   - heapPlusPlus: both endpoints labeled "+" — the binding constraint
//     when both trees try to raise their epsilon.
//   - heapPlusMinus[0]: the endpoint in trees[0] is "+", the endpoint in
//     trees[1] is "-" — binding when trees[0] raises and trees[1] lowers.
//   - heapPlusMinus[1]: the mirror image, endpoint in trees[1] is "+".
//
// A treeEdge is created lazily the first time an edge is discovered
// crossing between two trees, and torn down when trees[0] or trees[1] is
// destroyed by augment.
type treeEdge struct {
	trees        [2]int
	heapPlusPlus *heap.Heap[int]
	// heapPlusMinus[d]: edges where the endpoint in trees[d] is "+" and the
	// endpoint in trees[1-d] is "-".
	heapPlusMinus [2]*heap.Heap[int]
	removed       bool
}

func newTreeEdge(a, b int) *treeEdge {
	return &treeEdge{
		trees:        [2]int{a, b},
		heapPlusPlus: heap.New[int](heap.MinOrder),
		heapPlusMinus: [2]*heap.Heap[int]{
			heap.New[int](heap.MinOrder),
			heap.New[int](heap.MinOrder),
		},
	}
}

// sideOf returns which side of te (0 or 1) tree treeIdx occupies, or -1.
func (te *treeEdge) sideOf(treeIdx int) int {
	switch treeIdx {
	case te.trees[0]:
		return 0
	case te.trees[1]:
		return 1
	default:
		return -1
	}
}
