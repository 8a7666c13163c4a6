// Package pile implements the two kinds of card piles on a patience board:
// foundations, which build up by suit from the ace, and columns, which
// build down in alternating colors from a king.
//
// Piles are persistent values. Every slice a pile holds has len == cap, so
// copying a pile shares its storage and any growth reallocates. Nothing in
// this package ever writes into an existing backing array.
package pile

import (
	"errors"

	"github.com/domino14/patience/cards"
)

var ErrRuleViolation = errors.New("card placement violates pile rules")

// Extend returns a new exact-capacity slice holding s followed by more.
func Extend(s []cards.Card, more ...cards.Card) []cards.Card {
	out := make([]cards.Card, len(s)+len(more))
	copy(out, s)
	copy(out[len(s):], more)
	return out
}

// Shrink drops the last n cards. The result still has len == cap.
func Shrink(s []cards.Card, n int) []cards.Card {
	k := len(s) - n
	return s[:k:k]
}

// Clone returns an exact-capacity copy of s.
func Clone(s []cards.Card) []cards.Card {
	return Extend(nil, s...)
}
