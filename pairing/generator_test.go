package pairing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchkit/blossomv/pairing"
)

func neutralWeight(pairing.Player, pairing.Player) float64 { return 1 }

func playersNamed(names ...string) []pairing.Player {
	out := make([]pairing.Player, len(names))
	for i, n := range names {
		out[i] = pairing.Player{ID: n}
	}
	return out
}

func TestPairings_FourPlayersNoBye(t *testing.T) {
	ms, err := pairing.Pairings(playersNamed("A", "B", "C", "D"), neutralWeight)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	seen := map[string]bool{}
	for _, m := range ms {
		require.False(t, m.IsBye)
		seen[m.White.ID] = true
		seen[m.Black.ID] = true
	}
	require.Len(t, seen, 4)
}

func TestPairings_ThreePlayersOneBye(t *testing.T) {
	ms, err := pairing.Pairings(playersNamed("A", "B", "C"), neutralWeight)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	byes := 0
	covered := map[string]bool{}
	for _, m := range ms {
		if m.IsBye {
			byes++
			covered[m.White.ID] = true
			continue
		}
		covered[m.White.ID] = true
		covered[m.Black.ID] = true
	}
	require.Equal(t, 1, byes)
	require.Len(t, covered, 3)
}

func TestPairings_OnePlayerIsABye(t *testing.T) {
	ms, err := pairing.Pairings(playersNamed("A"), neutralWeight)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	require.True(t, ms[0].IsBye)
	require.Equal(t, "A", ms[0].White.ID)
}

func TestPairings_ZeroPlayers(t *testing.T) {
	ms, err := pairing.Pairings(nil, neutralWeight)
	require.NoError(t, err)
	require.Empty(t, ms)
}

func TestPairings_DuplicateIDRejected(t *testing.T) {
	_, err := pairing.Pairings(playersNamed("A", "A"), neutralWeight)
	require.ErrorIs(t, err, pairing.ErrDuplicatePlayerID)
}

func TestPairings_PrefersHigherWeightPairs(t *testing.T) {
	// A-B and C-D are rated much more compatible than any cross pairing;
	// the maximum-weight matching should keep them together.
	w := func(a, b pairing.Player) float64 {
		pairs := map[[2]string]float64{
			{"A", "B"}: 100, {"B", "A"}: 100,
			{"C", "D"}: 100, {"D", "C"}: 100,
		}
		if v, ok := pairs[[2]string{a.ID, b.ID}]; ok {
			return v
		}
		return 1
	}
	ms, err := pairing.Pairings(playersNamed("A", "B", "C", "D"), w)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	for _, m := range ms {
		pair := map[string]bool{m.White.ID: true, m.Black.ID: true}
		require.True(t, pair["A"] && pair["B"] || pair["C"] && pair["D"])
	}
}

func TestPairings_ByeEligibilityPrefersFewerByes(t *testing.T) {
	players := []pairing.Player{
		{ID: "A", Byes: 0},
		{ID: "B", Byes: 2},
		{ID: "C", Byes: 2},
	}
	ms, err := pairing.Pairings(players, neutralWeight)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	for _, m := range ms {
		if m.IsBye {
			// A has the fewest byes (0), so A is the only eligible dummy
			// partner; B and C (both at the max) are not.
			require.Equal(t, "A", m.White.ID)
		}
	}
}

func TestDecideColors_OppositeSignsPositiveWins(t *testing.T) {
	a := pairing.Player{ID: "A", Colors: []pairing.Color{pairing.Black, pairing.Black}}
	b := pairing.Player{ID: "B", Colors: []pairing.Color{pairing.White, pairing.White}}
	require.Equal(t, pairing.ColorPriority(3), a.ColorPriority())
	require.Equal(t, pairing.ColorPriority(-3), b.ColorPriority())
	white, black := pairing.DecideColors(a, b)
	require.Equal(t, "A", white.ID)
	require.Equal(t, "B", black.ID)
}

func TestDecideColors_TieBreaksByID(t *testing.T) {
	a := pairing.Player{ID: "A"}
	b := pairing.Player{ID: "B"}
	white, black := pairing.DecideColors(a, b)
	require.Equal(t, "A", white.ID)
	require.Equal(t, "B", black.ID)
}

func TestColorPriority_SameDayColorForces(t *testing.T) {
	white := pairing.Player{ID: "A", SameDayColor: pairing.White}
	black := pairing.Player{ID: "B", SameDayColor: pairing.Black}
	require.Equal(t, pairing.ColorPriority(-3), white.ColorPriority())
	require.Equal(t, pairing.ColorPriority(3), black.ColorPriority())
}

func TestColorPriority_SameDayColorOutranksStreak(t *testing.T) {
	// Already had Black today, but the earlier-round White, White streak
	// alone would give -3 (prefer Black) — the same-day assignment must
	// still win, forcing White (+3) regardless.
	p := pairing.Player{
		ID:           "A",
		Colors:       []pairing.Color{pairing.White, pairing.White},
		SameDayColor: pairing.Black,
	}
	require.Equal(t, pairing.ColorPriority(3), p.ColorPriority())
}

func TestDecideColors_SameDayColorsDoNotCollide(t *testing.T) {
	a := pairing.Player{ID: "A", SameDayColor: pairing.Black}
	b := pairing.Player{ID: "B", SameDayColor: pairing.White}
	white, black := pairing.DecideColors(a, b)
	require.Equal(t, "A", white.ID)
	require.Equal(t, "B", black.ID)
}
