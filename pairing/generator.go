package pairing

import (
	"fmt"

	"github.com/matchkit/blossomv/blossom"
	"github.com/matchkit/blossomv/graph"
)

// config holds Pairings' optional configuration, built from ...Option.
type config struct {
	solverOpts []blossom.Option
}

// Option configures Pairings.
type Option func(*config)

// WithSolverOptions forwards additional blossom.Option values to the
// underlying blossom.Solve call (e.g. to pick a DualUpdateStrategy or
// Initialization strategy for a large field). Pairings always adds
// blossom.WithObjective(blossom.Maximize) itself; passing another
// Objective here has no effect.
func WithSolverOptions(opts ...blossom.Option) Option {
	return func(c *config) { c.solverOpts = append(c.solverOpts, opts...) }
}

const dummyIDBase = "__bye__"

// Pairings builds one round of pairings for players, scored by w: an odd
// field gets a dummy bye player; bye-eligible real players (fewer byes than
// the field's current maximum, or zero byes) get a zero-weight edge to the
// dummy; every real pair
// gets weight w(a,b); the round is then exactly a maximum-weight perfect
// matching over that graph. The dummy's match is reported back as a
// Matchup with IsBye set instead of a real opponent.
func Pairings(players []Player, w WeightFunc, opts ...Option) ([]Matchup, error) {
	if len(players) == 0 {
		return []Matchup{}, nil
	}
	if len(players) >= 2 && w == nil {
		return nil, ErrNilWeightFunc
	}

	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	byID := make(map[string]Player, len(players))
	ids := make([]string, 0, len(players))
	for _, p := range players {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayerID, p.ID)
		}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	hasDummy := len(players)%2 != 0
	dummyID := ""

	g := graph.NewSimpleGraph()
	for _, id := range ids {
		g.AddVertex(id)
	}

	explicit := make(map[graph.EdgeID]float64)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := byID[ids[i]], byID[ids[j]]
			eid, err := g.AddEdge(ids[i], ids[j])
			if err != nil {
				return nil, err
			}
			explicit[eid] = w(a, b)
		}
	}

	if hasDummy {
		dummyID = uniqueDummyID(byID)
		g.AddVertex(dummyID)

		maxByes := 0
		for _, p := range players {
			if p.Byes > maxByes {
				maxByes = p.Byes
			}
		}
		for _, id := range ids {
			p := byID[id]
			if p.Byes < maxByes || p.Byes == 0 {
				eid, err := g.AddEdge(id, dummyID)
				if err != nil {
					return nil, err
				}
				explicit[eid] = 0
			}
		}
	}

	view := graph.NewWeightedView(g, explicit)
	solveOpts := append(append([]blossom.Option{}, cfg.solverOpts...), blossom.WithObjective(blossom.Maximize))
	m, err := blossom.Solve(view, solveOpts...)
	if err != nil {
		return nil, err
	}

	matchups := make([]Matchup, 0, len(m.Pairs))
	for _, pair := range m.Pairs {
		a, b := pair[0], pair[1]
		if hasDummy && (a == dummyID || b == dummyID) {
			realID := a
			if a == dummyID {
				realID = b
			}
			matchups = append(matchups, Matchup{White: byID[realID], IsBye: true})
			continue
		}
		white, black := DecideColors(byID[a], byID[b])
		matchups = append(matchups, Matchup{White: white, Black: black})
	}
	return matchups, nil
}

// uniqueDummyID returns an ID guaranteed not to collide with any real
// player's ID.
func uniqueDummyID(byID map[string]Player) string {
	if _, taken := byID[dummyIDBase]; !taken {
		return dummyIDBase
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", dummyIDBase, i)
		if _, taken := byID[candidate]; !taken {
			return candidate
		}
	}
}
