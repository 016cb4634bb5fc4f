package blossom

import (
	"errors"
	"fmt"

	"github.com/matchkit/blossomv/heap"
)

// Sentinel errors returned by Solve and its helpers.
var (
	// ErrInvalidInput is returned when the graph cannot possibly admit a
	// perfect matching for structural reasons independent of edge weights:
	// an odd number of vertices, or fewer than two vertices.
	ErrInvalidInput = errors.New("blossom: graph has an odd number of vertices or fewer than two vertices")

	// ErrEmptyGraph is returned by Solve when the graph has zero vertices;
	// callers that treat an empty matching as valid should check for it
	// with errors.Is before treating the zero-vertex case as an error.
	ErrEmptyGraph = errors.New("blossom: graph has no vertices")
)

// NoPerfectMatchingError is returned when the driver loop terminates with
// at least one alternating tree still standing: the graph (restricted to
// the component reachable from that tree) admits no perfect matching. Eps
// is the final epsilon value of the surviving tree at the point the driver
// gave up, included for diagnostics.
type NoPerfectMatchingError struct {
	Eps float64
}

func (e *NoPerfectMatchingError) Error() string {
	return fmt.Sprintf("blossom: no perfect matching exists (surviving tree epsilon = %g)", e.Eps)
}

// Re-exported from package heap so callers that only import blossom can
// match the pairing heap's sentinel values with errors.Is.
var (
	ErrHeapAlreadyMelded  = heap.ErrHeapAlreadyMelded
	ErrKeyNotDecreased    = heap.ErrKeyNotDecreased
	ErrInvalidHeapHandle  = heap.ErrInvalidHandle
)
