package graph

import "sync"

// WeightFunc computes the weight of the edge between two vertex IDs. It is
// called at most once per edge when caching is enabled.
type WeightFunc func(u, v string) float64

// ViewOption configures a WeightedView.
type ViewOption func(*WeightedView)

// WithWeightFunc supplies a fallback weight function, consulted for any
// edge not present in the view's explicit mapping.
func WithWeightFunc(fn WeightFunc) ViewOption {
	return func(v *WeightedView) { v.fn = fn }
}

// WithCache enables memoizing WeightFunc results the first time each edge's
// weight is read, so a caller-supplied WeightFunc with non-trivial cost
// (e.g. a Swiss-pairing scoring function) is evaluated at most once per
// edge for the lifetime of the view.
func WithCache() ViewOption {
	return func(v *WeightedView) { v.cache = make(map[EdgeID]float64) }
}

// WithPropagateWrites makes SetWeight also call the underlying Graph's
// SetWeight after updating the view's own mapping. This is a no-op in
// effect when the underlying Graph is a SimpleGraph (whose SetWeight
// discards the value), but lets a WeightedView stacked over another
// WeightedView keep both layers consistent.
func WithPropagateWrites() ViewOption {
	return func(v *WeightedView) { v.propagate = true }
}

// WeightedView decorates any Graph with an edge-weight overlay, without
// copying its topology: every non-weight method (AddVertex, AddEdge,
// EdgesOf, VertexSet, EdgeSet, Source, Target) passes through to the
// wrapped Graph unchanged. Weight resolution order is: explicit mapping,
// then WeightFunc (optionally cached), then the wrapped Graph's own
// Weight (SimpleGraph's default of 1).
type WeightedView struct {
	Graph

	mu        sync.RWMutex
	explicit  map[EdgeID]float64
	fn        WeightFunc
	cache     map[EdgeID]float64
	propagate bool
}

// NewWeightedView wraps g. explicit may be nil; entries in it take
// precedence over WithWeightFunc and over g's own Weight.
func NewWeightedView(g Graph, explicit map[EdgeID]float64, opts ...ViewOption) *WeightedView {
	v := &WeightedView{Graph: g, explicit: explicit}
	if v.explicit == nil {
		v.explicit = make(map[EdgeID]float64)
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Weight overrides Graph.Weight with the mapping/function/cache overlay
// described on WeightedView.
func (v *WeightedView) Weight(e EdgeID) (float64, error) {
	v.mu.RLock()
	if w, ok := v.explicit[e]; ok {
		v.mu.RUnlock()
		return w, nil
	}
	if v.cache != nil {
		if w, ok := v.cache[e]; ok {
			v.mu.RUnlock()
			return w, nil
		}
	}
	fn := v.fn
	v.mu.RUnlock()

	if fn != nil {
		u, err := v.Graph.Source(e)
		if err != nil {
			return 0, err
		}
		w, err := v.Graph.Target(e)
		if err != nil {
			return 0, err
		}
		weight := fn(u, w)
		if v.cache != nil {
			v.mu.Lock()
			v.cache[e] = weight
			v.mu.Unlock()
		}
		return weight, nil
	}

	return v.Graph.Weight(e)
}

// SetWeight overrides Graph.SetWeight, writing into the view's own mapping
// and, if WithPropagateWrites was set, forwarding to the wrapped Graph.
func (v *WeightedView) SetWeight(e EdgeID, w float64) error {
	if _, err := v.Graph.Source(e); err != nil {
		return err
	}
	v.mu.Lock()
	v.explicit[e] = w
	if v.cache != nil {
		delete(v.cache, e)
	}
	v.mu.Unlock()
	if v.propagate {
		return v.Graph.SetWeight(e, w)
	}
	return nil
}
