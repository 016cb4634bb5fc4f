package pairing

// Color is the side of the board a player is assigned, White or Black.
type Color int8

const (
	// ColorNone marks a player with no recorded games yet.
	ColorNone Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Player is one entrant in a pairing round: an ID unique within the round,
// the number of byes already received (used by the bye-candidate rule),
// a color history (oldest first) the color-priority decision reads, and
// (for events pairing more than one game per player per day) the color
// already assigned earlier the same day, if any.
type Player struct {
	ID     string
	Byes   int
	Colors []Color

	// SameDayColor is the color this player has already been assigned in
	// an earlier game the same day (a double-round event), or ColorNone if
	// this player is not playing more than one game today. A player who
	// already had White today must not be handed White again, and
	// likewise for Black — this forces the same ±3 priority a
	// two-consecutive-game streak does.
	SameDayColor Color
}

// ColorPriority is a player's signed preference for playing White this
// round, on a six-level (signed 3-level) scale:
//
//	 ±3 forced — a two-game same-color streak, a running color imbalance
//	    (whites played minus blacks played) that has reached ±2, or a
//	    color already assigned to this player earlier the same day.
//	 ±2 a one-game color imbalance: a mild bias toward the underplayed
//	    color.
//	 ±1 no imbalance, just the weak preference to alternate from the last
//	    color played.
//	  0 no games played yet.
//
// Positive values prefer White, negative prefer Black.
type ColorPriority int8

// ColorPriority computes p's current signed color preference from its
// recorded color history and same-day assignment, if any.
func (p Player) ColorPriority() ColorPriority {
	if p.SameDayColor == White {
		return -3
	}
	if p.SameDayColor == Black {
		return 3
	}

	n := len(p.Colors)
	if n == 0 {
		return 0
	}
	last := p.Colors[n-1]

	if n >= 2 && p.Colors[n-2] == last {
		if last == White {
			return -3
		}
		return 3
	}

	var whites, blacks int
	for _, c := range p.Colors {
		switch c {
		case White:
			whites++
		case Black:
			blacks++
		}
	}
	diff := whites - blacks
	switch {
	case diff >= 2:
		return -3
	case diff <= -2:
		return 3
	case diff == 1:
		return -2
	case diff == -1:
		return 2
	}

	if last == White {
		return -1
	}
	return 1
}

// WeightFunc scores how desirable a pairing between a and b is; larger is
// better. Pairings runs a maximum-weight matching over these scores, so a
// WeightFunc encoding "avoid a rematch" or "prefer players with close
// scores" as a large negative/positive adjustment shapes the whole round.
type WeightFunc func(a, b Player) float64

// Matchup is one output pairing. For a bye, White holds the player who
// receives it, Black is the zero Player, and IsBye is true.
type Matchup struct {
	White Player
	Black Player
	IsBye bool
}
