// Package graph defines the undirected simple graph abstraction the matching
// solver depends on, and a compositional weighted view over it.
//
// Graph is a small capability interface (enumerate vertices, enumerate
// incident edges, resolve endpoints, read/write weight) rather than a single
// concrete type, so the solver in package blossom can run against any
// implementation — SimpleGraph is the one this module ships, and
// WeightedView decorates any Graph with an edge-weight overlay without
// copying its topology.
//
// Vertices are opaque, hashable identifiers (strings, following the same
// convention every algorithm package in this module's lineage uses). Edges
// are unordered pairs: AddEdge(u, v) and AddEdge(v, u) name the same edge.
//
// Complexity, all operations: O(1) amortized for vertex/edge existence and
// endpoint lookups, O(deg(v)) for EdgesOf(v), O(V log V) / O(E log E) for
// VertexSet / EdgeSet (both return sorted results).
package graph
