package heap

import "errors"

// Sentinel errors returned by the pairing heap.
var (
	// ErrHeapAlreadyMelded indicates the heap was absorbed into another heap
	// by a previous Meld call and can no longer be used directly. Handles it
	// already produced remain valid and continue to address the surviving heap.
	ErrHeapAlreadyMelded = errors.New("heap: heap already melded into another")

	// ErrInvalidHandle indicates the handle addresses a node that has already
	// been removed (via Delete or DeleteMin).
	ErrInvalidHandle = errors.New("heap: invalid or stale handle")

	// ErrKeyNotDecreased indicates DecreaseKey was called with a key that is
	// worse than (for MinOrder, greater than) the node's current key.
	ErrKeyNotDecreased = errors.New("heap: new key does not decrease current key")

	// ErrComparatorMismatch indicates Meld was attempted between two heaps
	// constructed with different orderings (Min vs Max).
	ErrComparatorMismatch = errors.New("heap: cannot meld heaps with different orderings")
)
