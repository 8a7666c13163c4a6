// Package stock is the face-down pile cards are dealt and drawn from.
package stock

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"

	"github.com/domino14/patience/cards"
	"github.com/domino14/patience/pile"
)

// Shuffler is anything that can produce a uniformly random permutation.
// Both *frand.RNG and *math/rand.Rand qualify.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// A Stock is an ordered pile of cards. The last card of the slice is the
// top of the stock. Like the piles, its slice always has len == cap so
// copies of a Stock can never see each other's draws.
type Stock struct {
	cards []cards.Card
}

// New builds a deck from ranks and shuffles it with the system's
// cryptographic RNG. frand panics if no entropy is available; there is
// nothing sensible to do in that case.
func New(ranks []uint8) *Stock {
	return NewShuffled(ranks, frand.New())
}

// NewSeeded shuffles deterministically: the same seed always gives the
// same deal.
func NewSeeded(ranks []uint8, seed uint64) *Stock {
	return NewShuffled(ranks, SeededRNG(seed))
}

// SeededRNG returns a ChaCha-based RNG keyed by seed.
func SeededRNG(seed uint64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return frand.NewCustom(key, 1024, 12)
}

func NewShuffled(ranks []uint8, rng Shuffler) *Stock {
	d := cards.Deck(ranks)
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
	return &Stock{cards: d[:len(d):len(d)]}
}

// FromCards wraps an explicit order, bottom card first.
func FromCards(cs []cards.Card) *Stock {
	return &Stock{cards: pile.Clone(cs)}
}

// Draw removes and returns the top card. ok is false when the stock is
// empty.
func (s *Stock) Draw() (c cards.Card, ok bool) {
	if len(s.cards) == 0 {
		return cards.Card{}, false
	}
	c = s.cards[len(s.cards)-1]
	s.cards = pile.Shrink(s.cards, 1)
	return c, true
}

// DrawAtMost draws up to n cards, in the order they come off the top.
func (s *Stock) DrawAtMost(n int) []cards.Card {
	if n > len(s.cards) {
		n = len(s.cards)
	}
	drawn := make([]cards.Card, 0, n)
	for i := 0; i < n; i++ {
		c, _ := s.Draw()
		drawn = append(drawn, c)
	}
	return drawn
}

// From replaces the contents wholesale. seq is bottom card first.
func (s *Stock) From(seq []cards.Card) {
	s.cards = pile.Clone(seq)
}

func (s *Stock) Len() int {
	return len(s.cards)
}

// Cards returns the stock bottom to top. Callers must not modify it.
func (s *Stock) Cards() []cards.Card {
	return s.cards
}

// ID identifies a deal by the order of its cards, top first, so that two
// stocks have the same ID iff they deal the same game.
func (s *Stock) ID() string {
	var sb strings.Builder
	sb.Grow(len(s.cards) * 3)
	for i := len(s.cards) - 1; i >= 0; i-- {
		sb.WriteString(s.cards[i].Code())
	}
	return sb.String()
}

// Hash is a short fingerprint of ID.
func (s *Stock) Hash() uint64 {
	return xxhash.Sum64String(s.ID())
}
