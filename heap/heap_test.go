package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchkit/blossomv/heap"
)

func TestInsertFindMinDeleteMin(t *testing.T) {
	h := heap.New[string](heap.MinOrder)
	_, err := h.Insert(5, "five")
	require.NoError(t, err)
	_, err = h.Insert(1, "one")
	require.NoError(t, err)
	_, err = h.Insert(3, "three")
	require.NoError(t, err)
	require.Equal(t, 3, h.Count())

	min, err := h.FindMin()
	require.NoError(t, err)
	require.Equal(t, "one", min.Value())

	order := []string{}
	for !h.IsEmpty() {
		m, err := h.DeleteMin()
		require.NoError(t, err)
		order = append(order, m.Value())
	}
	require.Equal(t, []string{"one", "three", "five"}, order)
}

func TestDecreaseKeyReordersMin(t *testing.T) {
	h := heap.New[string](heap.MinOrder)
	a, _ := h.Insert(10, "a")
	b, _ := h.Insert(20, "b")
	_, _ = h.Insert(30, "c")

	require.NoError(t, a.DecreaseKey(5))
	require.Error(t, b.DecreaseKey(25)) // 25 > 20, not a decrease

	require.NoError(t, b.DecreaseKey(1))
	min, err := h.FindMin()
	require.NoError(t, err)
	require.Equal(t, "b", min.Value())
}

func TestDeleteArbitraryNode(t *testing.T) {
	h := heap.New[int](heap.MinOrder)
	handles := map[int]*heap.Handle[int]{}
	for _, k := range []float64{5, 1, 9, 3, 7} {
		hn, _ := h.Insert(k, int(k))
		handles[int(k)] = hn
	}
	require.NoError(t, handles[9].Delete())
	require.Error(t, handles[9].Delete()) // already gone
	require.Equal(t, 4, h.Count())

	seen := []int{}
	for !h.IsEmpty() {
		m, _ := h.DeleteMin()
		seen = append(seen, m.Value())
	}
	require.Equal(t, []int{1, 3, 5, 7}, seen)
}

func TestMeldPreservesHandlesAndOrder(t *testing.T) {
	h1 := heap.New[string](heap.MinOrder)
	h2 := heap.New[string](heap.MinOrder)

	a, _ := h1.Insert(4, "a")
	_, _ = h1.Insert(8, "b")
	c, _ := h2.Insert(2, "c")
	_, _ = h2.Insert(6, "d")

	require.NoError(t, h1.Meld(h2))

	// h2 is now absorbed; direct use fails.
	_, err := h2.Insert(1, "z")
	require.ErrorIs(t, err, heap.ErrHeapAlreadyMelded)

	// Handles issued by h2 before the meld still work through h1.
	require.NoError(t, c.DecreaseKey(1))
	min, err := h1.FindMin()
	require.NoError(t, err)
	require.Equal(t, "c", min.Value())

	require.NoError(t, a.Delete())
	require.Equal(t, 3, h1.Count())
}

func TestMeldComparatorMismatch(t *testing.T) {
	h1 := heap.New[int](heap.MinOrder)
	h2 := heap.New[int](heap.MaxOrder)
	require.ErrorIs(t, h1.Meld(h2), heap.ErrComparatorMismatch)
}

func TestMaxOrder(t *testing.T) {
	h := heap.New[int](heap.MaxOrder)
	_, _ = h.Insert(1, 1)
	_, _ = h.Insert(9, 9)
	_, _ = h.Insert(5, 5)
	m, err := h.FindMin()
	require.NoError(t, err)
	require.Equal(t, 9, m.Value())
}

func TestClearInvalidatesHandles(t *testing.T) {
	h := heap.New[int](heap.MinOrder)
	a, _ := h.Insert(1, 1)
	require.NoError(t, h.Clear())
	require.True(t, h.IsEmpty())
	require.False(t, a.Alive())
	require.Error(t, a.Delete())
}
