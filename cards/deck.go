package cards

import (
	"fmt"
	"strings"
)

// ReferenceRanks is the rank set the default deck is built from. Rank 6 is
// missing and 14 is present; the card count is still 52.
var ReferenceRanks = []uint8{1, 2, 3, 4, 5, 7, 8, 9, 10, 11, 12, 13, 14}

// StandardRanks is an ordinary ace-to-king rank set.
var StandardRanks = []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

const (
	RanksReference = "reference"
	RanksStandard  = "standard"
)

// RanksByName looks up one of the named rank sets.
func RanksByName(name string) ([]uint8, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case RanksReference, "":
		return ReferenceRanks, nil
	case RanksStandard:
		return StandardRanks, nil
	}
	return nil, fmt.Errorf("unknown deck ranks %q", name)
}

// Deck returns every (suit, rank) combination, suit-major, in a fixed order.
func Deck(ranks []uint8) []Card {
	d := make([]Card, 0, len(Suits)*len(ranks))
	for _, s := range Suits {
		for _, r := range ranks {
			d = append(d, Card{Suit: s, Rank: r})
		}
	}
	return d
}
