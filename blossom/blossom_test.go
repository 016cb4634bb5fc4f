package blossom_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchkit/blossomv/blossom"
	"github.com/matchkit/blossomv/graph"
)

// newWeighted builds a WeightedView over a fresh SimpleGraph from a vertex
// list and an edge->weight map.
func newWeighted(t *testing.T, vertices []string, edges map[[2]string]float64) graph.Graph {
	t.Helper()
	g := graph.NewSimpleGraph()
	for _, v := range vertices {
		g.AddVertex(v)
	}
	explicit := make(map[graph.EdgeID]float64, len(edges))
	for pair, w := range edges {
		id, err := g.AddEdge(pair[0], pair[1])
		require.NoError(t, err)
		explicit[id] = w
	}
	return graph.NewWeightedView(g, explicit)
}

// fourCycle is A-B-C-D-A: the only two perfect matchings are {AB,CD}=10 and
// {BC,DA}=11.
func fourCycle(t *testing.T) graph.Graph {
	return newWeighted(t, []string{"A", "B", "C", "D"}, map[[2]string]float64{
		{"A", "B"}: 5,
		{"B", "C"}: 6,
		{"C", "D"}: 5,
		{"D", "A"}: 5,
	})
}

func TestSolve_FourCycleMinimize(t *testing.T) {
	m, err := blossom.Solve(fourCycle(t))
	require.NoError(t, err)
	require.Len(t, m.Pairs, 2)
	require.InDelta(t, 10, m.Weight, blossom.Epsilon)
}

func TestSolve_FourCycleMaximize(t *testing.T) {
	m, err := blossom.Solve(fourCycle(t), blossom.WithObjective(blossom.Maximize))
	require.NoError(t, err)
	require.Len(t, m.Pairs, 2)
	require.InDelta(t, 11, m.Weight, blossom.Epsilon)
}

// skewedFourCycle is A-B-C-D-A with weights chosen so that a naive
// nearest-neighbor greedy pass (processing A first, tying AB/AD at the
// graph's minimum weight and keeping AB, then forced into CD at 100 since B
// is already taken) lands on {AB,CD}=101 — a full match, but far from the
// true minimum {BC,DA}=3. A correct initializer must never treat "every
// vertex greedily matched" as a certificate of optimality on its own.
func skewedFourCycle(t *testing.T) graph.Graph {
	return newWeighted(t, []string{"A", "B", "C", "D"}, map[[2]string]float64{
		{"A", "B"}: 1,
		{"B", "C"}: 2,
		{"C", "D"}: 100,
		{"D", "A"}: 1,
	})
}

func TestSolve_SkewedFourCycleAvoidsNaiveGreedyLocalMinimum(t *testing.T) {
	m, err := blossom.Solve(skewedFourCycle(t))
	require.NoError(t, err)
	require.Len(t, m.Pairs, 2)
	require.InDelta(t, 3, m.Weight, blossom.Epsilon)
	require.NoError(t, m.CheckDualFeasibility())
	weight, optimal := m.TestOptimality()
	require.True(t, optimal)
	require.InDelta(t, 3, weight, blossom.Epsilon)
}

// eightCycle is an 8-vertex cycle v1..v8; its only two perfect matchings are
// the "odd" edges (v1v2, v3v4, v5v6, v7v8) summing to 18, and the "even"
// edges (v2v3, v4v5, v6v7, v8v1) summing to 27.
func eightCycle(t *testing.T) graph.Graph {
	verts := []string{"v1", "v2", "v3", "v4", "v5", "v6", "v7", "v8"}
	edges := map[[2]string]float64{
		{"v1", "v2"}: 3,
		{"v3", "v4"}: 5,
		{"v5", "v6"}: 4,
		{"v7", "v8"}: 6,
		{"v2", "v3"}: 7,
		{"v4", "v5"}: 6,
		{"v6", "v7"}: 8,
		{"v8", "v1"}: 6,
	}
	return newWeighted(t, verts, edges)
}

func TestSolve_EightCycleMinimize(t *testing.T) {
	m, err := blossom.Solve(eightCycle(t))
	require.NoError(t, err)
	require.Len(t, m.Pairs, 4)
	require.InDelta(t, 18, m.Weight, blossom.Epsilon)
}

func TestSolve_EightCycleMaximize(t *testing.T) {
	m, err := blossom.Solve(eightCycle(t), blossom.WithObjective(blossom.Maximize))
	require.NoError(t, err)
	require.Len(t, m.Pairs, 4)
	require.InDelta(t, 27, m.Weight, blossom.Epsilon)
}

func TestSolve_EmptyGraph(t *testing.T) {
	g := graph.NewSimpleGraph()
	_, err := blossom.Solve(g)
	require.ErrorIs(t, err, blossom.ErrEmptyGraph)
}

func TestSolve_OddVertexCount(t *testing.T) {
	g := newWeighted(t, []string{"A", "B", "C"}, map[[2]string]float64{
		{"A", "B"}: 1,
		{"B", "C"}: 1,
	})
	_, err := blossom.Solve(g)
	require.ErrorIs(t, err, blossom.ErrInvalidInput)
}

func TestSolve_DisconnectedHasNoPerfectMatching(t *testing.T) {
	g := graph.NewSimpleGraph()
	g.AddVertex("A")
	g.AddVertex("B")
	g.AddVertex("C")
	g.AddVertex("D")
	_, err := g.AddEdge("A", "B")
	require.NoError(t, err)
	// C and D have no edge to anything: no perfect matching can exist.
	_, err = blossom.Solve(g)
	var noMatch *blossom.NoPerfectMatchingError
	require.True(t, errors.As(err, &noMatch))
}

// fakeSelfLoopGraph is a minimal graph.Graph exercising build()'s
// self-loop-skipping path; SimpleGraph itself refuses to create self-loops,
// so this scenario needs a hand-rolled fake to reach the code at all.
type fakeSelfLoopGraph struct {
	verts []string
	edges map[graph.EdgeID][2]string
	w     map[graph.EdgeID]float64
}

func (f *fakeSelfLoopGraph) AddVertex(string) bool        { return false }
func (f *fakeSelfLoopGraph) RemoveVertex(string) error    { return nil }
func (f *fakeSelfLoopGraph) RemoveEdge(graph.EdgeID) error { return nil }
func (f *fakeSelfLoopGraph) VertexSet() []string          { return f.verts }
func (f *fakeSelfLoopGraph) EdgeSet() []graph.EdgeID {
	out := make([]graph.EdgeID, 0, len(f.edges))
	for id := range f.edges {
		out = append(out, id)
	}
	return out
}
func (f *fakeSelfLoopGraph) EdgesOf(v string) ([]graph.EdgeID, error) {
	var out []graph.EdgeID
	for id, ep := range f.edges {
		if ep[0] == v || ep[1] == v {
			out = append(out, id)
		}
	}
	return out, nil
}
func (f *fakeSelfLoopGraph) Source(e graph.EdgeID) (string, error) { return f.edges[e][0], nil }
func (f *fakeSelfLoopGraph) Target(e graph.EdgeID) (string, error) { return f.edges[e][1], nil }
func (f *fakeSelfLoopGraph) Weight(e graph.EdgeID) (float64, error) {
	return f.w[e], nil
}
func (f *fakeSelfLoopGraph) SetWeight(e graph.EdgeID, w float64) error {
	f.w[e] = w
	return nil
}
func (f *fakeSelfLoopGraph) AddEdge(u, v string) (graph.EdgeID, error) {
	return "", errors.New("unused in this fake")
}

func TestSolve_SelfLoopIsIgnored(t *testing.T) {
	g := &fakeSelfLoopGraph{
		verts: []string{"A", "B"},
		edges: map[graph.EdgeID][2]string{
			"loop": {"A", "A"},
			"e1":   {"A", "B"},
		},
		w: map[graph.EdgeID]float64{"loop": -1000, "e1": 4},
	}
	m, err := blossom.Solve(g)
	require.NoError(t, err)
	require.Len(t, m.Pairs, 1)
	require.InDelta(t, 4, m.Weight, blossom.Epsilon)
}

func TestSolve_InitializationStrategiesAgree(t *testing.T) {
	strategies := []blossom.Initialization{blossom.InitNone, blossom.InitGreedy, blossom.InitFractional}
	for _, initS := range strategies {
		m, err := blossom.Solve(eightCycle(t), blossom.WithInitialization(initS))
		require.NoError(t, err)
		require.InDeltaf(t, 18, m.Weight, blossom.Epsilon, "init strategy %s", initS)
	}
}

func TestSolve_DualUpdateStrategiesAgree(t *testing.T) {
	strategies := []blossom.DualUpdateStrategy{blossom.SingleTree, blossom.FixedDelta, blossom.ConnectedComponents}
	for _, dualS := range strategies {
		m, err := blossom.Solve(eightCycle(t), blossom.WithDualUpdateStrategy(dualS))
		require.NoError(t, err)
		require.InDeltaf(t, 18, m.Weight, blossom.Epsilon, "dual strategy %s", dualS)
	}
}

// completeGraph10 is K10 with distinct, mutually prime-ish weights, dense
// enough that every tree touches several cross-tree edges of both polarities
// per round — exactly the shape that would expose a ConnectedComponents
// component-formation or delta-bounding bug (an edge's true slack going
// negative) that a sparser cycle graph's dual updates would not reach.
func completeGraph10(t *testing.T) graph.Graph {
	t.Helper()
	ids := []string{"v0", "v1", "v2", "v3", "v4", "v5", "v6", "v7", "v8", "v9"}
	edges := make(map[[2]string]float64)
	w := 1.0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			edges[[2]string{ids[i], ids[j]}] = w
			w += 3.0
		}
	}
	return newWeighted(t, ids, edges)
}

// TestSolve_ConnectedComponentsRespectsDualFeasibility runs the
// ConnectedComponents dual-update strategy over a dense complete graph and
// checks the reported dual solution against every original edge's slack
// directly (CheckDualFeasibility), not just the final matching weight — this
// is what would have caught a component-formation or delta-bounding bug
// that drives some edge's true slack negative without necessarily changing
// the optimal weight found.
func TestSolve_ConnectedComponentsRespectsDualFeasibility(t *testing.T) {
	m, err := blossom.Solve(completeGraph10(t), blossom.WithDualUpdateStrategy(blossom.ConnectedComponents))
	require.NoError(t, err)
	require.NoError(t, m.CheckDualFeasibility())
	obj, optimal := m.TestOptimality()
	require.True(t, optimal, "dual objective %v should match matching weight %v", obj, m.Weight)
}

func TestSolve_Determinism(t *testing.T) {
	var weights []float64
	for i := 0; i < 5; i++ {
		m, err := blossom.Solve(eightCycle(t))
		require.NoError(t, err)
		weights = append(weights, m.Weight)
	}
	for _, w := range weights {
		require.InDelta(t, weights[0], w, blossom.Epsilon)
	}
}

func TestMatching_DualFeasibilityAndOptimality(t *testing.T) {
	for _, tc := range []struct {
		name string
		g    graph.Graph
	}{
		{"four-cycle", fourCycle(t)},
		{"eight-cycle", eightCycle(t)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := blossom.Solve(tc.g)
			require.NoError(t, err)
			require.NoError(t, m.CheckDualFeasibility())
			_, optimal := m.TestOptimality()
			require.True(t, optimal)
		})
	}
}

func TestSolve_OddCycleWithPendant(t *testing.T) {
	// A-B-C form a triangle (odd cycle), D hangs off C, exercising the
	// solver's handling of an odd component that must resolve to the one
	// perfect matching that exists: {A-B, C-D}.
	g := newWeighted(t, []string{"A", "B", "C", "D"}, map[[2]string]float64{
		{"A", "B"}: 1,
		{"B", "C"}: 1,
		{"A", "C"}: 1,
		{"C", "D"}: 2,
	})
	m, err := blossom.Solve(g)
	require.NoError(t, err)
	require.Len(t, m.Pairs, 2)
	require.InDelta(t, 3, m.Weight, blossom.Epsilon)
	require.NoError(t, m.CheckDualFeasibility())
}

func TestMatching_PerturbedDualFailsOptimality(t *testing.T) {
	m, err := blossom.Solve(fourCycle(t))
	require.NoError(t, err)
	_, optimal := m.TestOptimality()
	require.True(t, optimal)

	for id := range m.Duals {
		m.Duals[id] += 1
		break
	}
	_, optimal = m.TestOptimality()
	require.False(t, optimal)
}

func TestSolve_MinimizeMaximizeAreSignFlips(t *testing.T) {
	g := fourCycle(t)
	negG := newWeighted(t, []string{"A", "B", "C", "D"}, map[[2]string]float64{
		{"A", "B"}: -5,
		{"B", "C"}: -6,
		{"C", "D"}: -5,
		{"D", "A"}: -5,
	})

	minM, err := blossom.Solve(g)
	require.NoError(t, err)
	maxNegM, err := blossom.Solve(negG, blossom.WithObjective(blossom.Maximize))
	require.NoError(t, err)

	require.InDelta(t, minM.Weight, -maxNegM.Weight, blossom.Epsilon)
	require.Equal(t, len(minM.Pairs), len(maxNegM.Pairs))
}

func TestMatching_SerializeRoundTrip(t *testing.T) {
	m, err := blossom.Solve(eightCycle(t))
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var reloaded blossom.Matching
	require.NoError(t, json.Unmarshal(data, &reloaded))

	require.ElementsMatch(t, m.Pairs, reloaded.Pairs)
	require.InDelta(t, m.Weight, reloaded.Weight, blossom.Epsilon)
}

func TestSolve_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := blossom.Solve(eightCycle(t), blossom.WithContext(ctx))
	require.Error(t, err)
}
