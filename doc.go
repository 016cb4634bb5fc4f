// Package blossomv is a minimum/maximum weight perfect matching solver for
// general (non-bipartite) undirected weighted graphs, implementing
// Kolmogorov's Blossom V algorithm, plus a tournament-pairing reduction
// (package pairing) built on top of it.
//
// Everything under one module is organized into four subpackages:
//
//	heap/    — addressable pairing heap (insert/decrease-key/delete/meld)
//	graph/   — thread-safe undirected graph and a weight-overlay view
//	blossom/ — the matching solver itself (Solve, Options, Matching)
//	pairing/ — Swiss-style round pairing reduced to a maximum-weight matching
//
// A minimal example, matching four players by pairwise compatibility:
//
//	g := graph.NewSimpleGraph()
//	for _, v := range []string{"A", "B", "C", "D"} {
//		g.AddVertex(v)
//	}
//	explicit := map[graph.EdgeID]float64{}
//	for _, e := range [][3]any{{"A", "B", 5.0}, {"B", "C", 6.0}, {"C", "D", 5.0}, {"D", "A", 5.0}} {
//		id, _ := g.AddEdge(e[0].(string), e[1].(string))
//		explicit[id] = e[2].(float64)
//	}
//	m, err := blossom.Solve(graph.NewWeightedView(g, explicit))
//
// package pairing wraps the same solver for the common case of turning a
// player pool and a compatibility score into a round of Matchups, byes
// included:
//
//	ms, err := pairing.Pairings(players, myWeightFunc)
//
// See each subpackage's own doc comment for its algorithm and invariants.
package blossomv
