// Package heap implements an addressable, mergeable pairing heap.
//
// It supports Insert, FindMin, DeleteMin, DecreaseKey, Delete and Meld, all in
// amortized O(log n) except FindMin which is O(1). Handles returned by Insert
// stay valid across Meld: a heap that has been melded into another becomes
// unusable for further Inserts, but every Handle it already produced keeps
// addressing the correct (key, value) pair through the surviving heap.
//
// Complexity (amortized, n = current node count):
//   - Insert:      O(1)
//   - FindMin:     O(1)
//   - DeleteMin:   O(log n)
//   - DecreaseKey: O(log n)
//   - Delete:      O(log n)
//   - Meld:        O(1) (one link); handle lookups after a meld are
//     O(log n) amortized due to path compression of the owner chain.
//
// Errors:
//
//	ErrHeapAlreadyMelded - the heap was absorbed by a Meld and can no longer
//	                       accept Insert/FindMin/DeleteMin calls.
//	ErrInvalidHandle     - the handle addresses a node that was already deleted.
//	ErrKeyNotDecreased   - DecreaseKey was called with a key greater than the
//	                       node's current key.
//	ErrComparatorMismatch - Meld was called between heaps with different
//	                       comparators.
package heap
