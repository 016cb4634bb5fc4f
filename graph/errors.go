package graph

import "errors"

// Sentinel errors for the graph package.
var (
	// ErrEmptyVertexID indicates a vertex ID of "" was supplied; the empty
	// string is reserved as "no vertex" throughout this module.
	ErrEmptyVertexID = errors.New("graph: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a vertex absent
	// from the graph.
	ErrVertexNotFound = errors.New("graph: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced an edge ID absent
	// from the graph.
	ErrEdgeNotFound = errors.New("graph: edge not found")

	// ErrSelfLoop indicates AddEdge was called with u == v; this package
	// implements a simple graph and self-loops are never permitted (the
	// matching solver's initializer is the one place self-loops are
	// tolerated, by skipping them outright, per spec).
	ErrSelfLoop = errors.New("graph: self-loops are not permitted")
)
