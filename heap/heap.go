package heap

// addChild inserts child (a standalone, self-looped node) into parent's
// circular child ring and sets child.parent.
func addChild[V any](parent, child *node[V]) {
	child.parent = parent
	if parent.firstChild == nil {
		parent.firstChild = child
		child.next, child.prev = child, child
		return
	}
	first := parent.firstChild
	last := first.prev
	last.next, child.prev = child, last
	child.next, first.prev = first, child
}

// link merges two standalone trees, returning the winner under h's ordering
// with the loser attached as one of its children. Both a and b must be
// self-looped roots (no siblings) on entry.
func link[V any](a, b *node[V], h *Heap[V]) *node[V] {
	if h.less(b.key, a.key) {
		a, b = b, a
	}
	addChild(a, b)
	return a
}

// mergeRoots is link with nil-root handling, used for Meld and DecreaseKey.
func mergeRoots[V any](a, b *node[V], h *Heap[V]) *node[V] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return link(a, b, h)
}

// detach removes n from its parent's child ring. n must have a non-nil
// parent (i.e. must not be the heap root).
func detach[V any](n *node[V]) {
	if n.next == n {
		n.parent.firstChild = nil
	} else {
		n.prev.next = n.next
		n.next.prev = n.prev
		if n.parent.firstChild == n {
			n.parent.firstChild = n.next
		}
	}
	n.parent = nil
	n.next, n.prev = n, n
}

// childrenToSlice detaches every child of n into an independent slice of
// standalone (self-looped, parent-less) trees, leaving n childless.
func childrenToSlice[V any](n *node[V]) []*node[V] {
	first := n.firstChild
	if first == nil {
		return nil
	}
	var out []*node[V]
	cur := first
	for {
		nxt := cur.next
		cur.parent = nil
		cur.next, cur.prev = cur, cur
		out = append(out, cur)
		cur = nxt
		if cur == first {
			break
		}
	}
	n.firstChild = nil
	return out
}

// multiPassMerge combines a slice of standalone trees into one, using the
// classic pairing-heap two-pass scheme: pair left-to-right, then fold the
// paired results right-to-left.
func multiPassMerge[V any](list []*node[V], h *Heap[V]) *node[V] {
	if len(list) == 0 {
		return nil
	}
	paired := make([]*node[V], 0, (len(list)+1)/2)
	i := 0
	for i+1 < len(list) {
		paired = append(paired, link(list[i], list[i+1], h))
		i += 2
	}
	if i < len(list) {
		paired = append(paired, list[i])
	}
	result := paired[len(paired)-1]
	for j := len(paired) - 2; j >= 0; j-- {
		result = link(result, paired[j], h)
	}
	return result
}

func markDeadTree[V any](n *node[V]) {
	if n == nil {
		return
	}
	n.alive = false
	if n.firstChild != nil {
		first := n.firstChild
		cur := first
		for {
			nxt := cur.next
			markDeadTree(cur)
			cur = nxt
			if cur == first {
				break
			}
		}
	}
}

// resolve walks h's union-find parent chain to the representative heap
// (the one still holding the live root/count), compressing the path.
func resolve[V any](h *Heap[V]) *Heap[V] {
	root := h
	for root.parentUF != nil {
		root = root.parentUF
	}
	for h.parentUF != nil {
		next := h.parentUF
		h.parentUF = root
		h = next
	}
	return root
}

func (h *Heap[V]) isMelded() bool { return h.parentUF != nil }

// Insert adds (key, value) to the heap and returns a handle addressing it.
func (h *Heap[V]) Insert(key float64, value V) (*Handle[V], error) {
	if h.isMelded() {
		return nil, ErrHeapAlreadyMelded
	}
	n := &node[V]{key: key, value: value, alive: true}
	n.next, n.prev = n, n
	handle := &Handle[V]{home: h, n: n}
	n.handle = handle
	h.root = mergeRoots(h.root, n, h)
	h.count++
	return handle, nil
}

// FindMin returns a handle to the extremal node, or (nil, nil) if empty.
func (h *Heap[V]) FindMin() (*Handle[V], error) {
	if h.isMelded() {
		return nil, ErrHeapAlreadyMelded
	}
	if h.root == nil {
		return nil, nil
	}
	return h.root.handle, nil
}

// DeleteMin removes and returns a handle to the extremal node, or (nil, nil)
// if empty. The returned handle's Key/Value remain readable but Alive()
// reports false and DecreaseKey/Delete on it fail with ErrInvalidHandle.
func (h *Heap[V]) DeleteMin() (*Handle[V], error) {
	if h.isMelded() {
		return nil, ErrHeapAlreadyMelded
	}
	if h.root == nil {
		return nil, nil
	}
	min := h.root
	children := childrenToSlice(min)
	h.root = multiPassMerge(children, h)
	min.alive = false
	h.count--
	return min.handle, nil
}

// DecreaseKey lowers (improves) the key of the node addressed by handle.
// It fails with ErrKeyNotDecreased if newKey is worse than the current key
// under the heap's ordering (an equal key is accepted), and
// ErrInvalidHandle if the node was already removed.
func (h *Handle[V]) DecreaseKey(newKey float64) error {
	real := resolve(h.home)
	h.home = real
	n := h.n
	if !n.alive {
		return ErrInvalidHandle
	}
	if real.less(n.key, newKey) {
		return ErrKeyNotDecreased
	}
	n.key = newKey
	if n.parent == nil {
		return nil // still the root; no reordering needed
	}
	detach(n)
	real.root = mergeRoots(real.root, n, real)
	return nil
}

// Delete removes the node addressed by handle from its heap, wherever that
// heap currently lives after any number of Melds.
func (h *Handle[V]) Delete() error {
	real := resolve(h.home)
	h.home = real
	n := h.n
	if !n.alive {
		return ErrInvalidHandle
	}
	children := childrenToSlice(n)
	if n.parent == nil {
		real.root = multiPassMerge(children, real)
	} else {
		detach(n)
		real.root = mergeRoots(real.root, multiPassMerge(children, real), real)
	}
	n.alive = false
	real.count--
	return nil
}

// Meld absorbs other into h. After this call other must not be used for
// Insert/FindMin/DeleteMin/Meld/Clear (it returns ErrHeapAlreadyMelded);
// handles it already produced keep working through h.
func (h *Heap[V]) Meld(other *Heap[V]) error {
	if h.isMelded() {
		return ErrHeapAlreadyMelded
	}
	if other.isMelded() {
		return ErrHeapAlreadyMelded
	}
	if h == other {
		return nil
	}
	if h.order != other.order {
		return ErrComparatorMismatch
	}
	h.root = mergeRoots(h.root, other.root, h)
	h.count += other.count
	other.root = nil
	other.count = 0
	other.parentUF = h
	return nil
}

// IsEmpty reports whether the heap (resolved through any melds) holds no
// live nodes.
func (h *Heap[V]) IsEmpty() bool { return resolve(h).root == nil }

// Count reports the number of live nodes in the heap (resolved through any
// melds).
func (h *Heap[V]) Count() int { return resolve(h).count }

// Clear empties the heap, invalidating every handle it had issued.
func (h *Heap[V]) Clear() error {
	if h.isMelded() {
		return ErrHeapAlreadyMelded
	}
	markDeadTree(h.root)
	h.root = nil
	h.count = 0
	return nil
}
