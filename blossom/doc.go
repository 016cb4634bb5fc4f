// Package blossom implements Kolmogorov's Blossom V algorithm for
// minimum/maximum weight perfect matching on general (non-bipartite)
// weighted graphs.
//
// The public entry point is Solve, which accepts any graph.Graph, an
// Objective (Minimize or Maximize), and a set of Options selecting the
// warm-start strategy (Initialization) and the dual-update strategy
// (DualUpdateStrategy), and returns a Matching or a NoPerfectMatchingError /
// ErrInvalidInput.
//
// Internally, the solver represents the input as flat node/edge arrays
// (state.go) manipulated by a primal updater (grow/augment/shrink/expand,
// primal.go) and a dual updater (three strategies, dual.go), coordinated by
// the driver loop in driver.go. All original vertices become alternating
// trees whose leaves shrink into blossoms and grow back out, until a single
// round of grow/shrink/expand/augment steps and dual updates leaves no tree
// standing — at which point every vertex is matched.
//
// Complexity: each of grow/shrink/expand runs in amortized O(log n) thanks
// to the addressable pairing heap in package heap; the driver runs
// O(n) outer rounds in the worst case, each doing O(n) primal work and one
// dual update, giving the textbook O(n^3) / O(n*m*log(n)) bounds associated
// with Blossom-type algorithms depending on graph density.
package blossom
