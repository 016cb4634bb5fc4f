// Package pairing builds one round of tournament pairings by reducing the
// problem — with byes and Swiss color balance — to a maximum-weight perfect
// matching solved by package blossom.
//
// The scoring/tiebreak function that ranks how good a candidate pairing is
// between two players is deliberately left to the caller (WeightFunc):
// this package owns only the reduction to a matching problem, the bye
// mechanics, and the color-side decision, not tournament scoring itself.
package pairing
