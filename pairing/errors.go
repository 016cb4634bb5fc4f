package pairing

import "errors"

// ErrDuplicatePlayerID is returned by Pairings when two players share an ID.
var ErrDuplicatePlayerID = errors.New("pairing: duplicate player ID")

// ErrNilWeightFunc is returned by Pairings when w is nil and there are at
// least two real players to weigh against each other.
var ErrNilWeightFunc = errors.New("pairing: weight function is nil")
