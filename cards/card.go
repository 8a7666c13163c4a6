// Package cards holds the value types every other package is built on:
// suits, colors, and the cards themselves.
package cards

import (
	"fmt"
	"strconv"
	"strings"
)

type Suit uint8

const (
	Spade Suit = iota
	Heart
	Diamond
	Club
)

const NumSuits = 4

// Suits lists every suit in construction order.
var Suits = [NumSuits]Suit{Spade, Heart, Diamond, Club}

var suitSymbols = [NumSuits]string{"♠", "♥", "♦", "♣"}
var suitLetters = [NumSuits]byte{'S', 'H', 'D', 'C'}

func (s Suit) String() string {
	if int(s) < len(suitSymbols) {
		return suitSymbols[s]
	}
	return "?"
}

// Letter is the ASCII code for the suit, as used in deal IDs.
func (s Suit) Letter() byte {
	return suitLetters[s]
}

type Color uint8

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

const (
	AceRank  = 1
	KingRank = 13
	// MaxRank is the largest rank any supported deck contains.
	MaxRank = 14
)

// Card is an immutable playing card. Two cards are equal iff their suit and
// rank are equal.
type Card struct {
	Suit Suit
	Rank uint8
}

func New(s Suit, rank uint8) Card {
	return Card{Suit: s, Rank: rank}
}

func (c Card) Color() Color {
	switch c.Suit {
	case Heart, Diamond:
		return Red
	default:
		return Black
	}
}

// Index maps a card to a small dense integer, for table lookups.
func (c Card) Index() int {
	return int(c.Suit)*(MaxRank+1) + int(c.Rank)
}

// NumIndices bounds Card.Index.
const NumIndices = NumSuits * (MaxRank + 1)

func (c Card) String() string {
	return strconv.Itoa(int(c.Rank)) + c.Suit.String()
}

// Code is the compact ASCII form of the card, e.g. "10H".
func (c Card) Code() string {
	return strconv.Itoa(int(c.Rank)) + string(c.Suit.Letter())
}

// ParseCard parses the output of Card.Code. The suit may also be given as
// its symbol.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("card %q is too short", s)
	}
	var suit Suit
	var rankPart string
	found := false
	for _, st := range Suits {
		if strings.HasSuffix(strings.ToUpper(s), string(st.Letter())) {
			suit, rankPart, found = st, s[:len(s)-1], true
			break
		}
		if strings.HasSuffix(s, st.String()) {
			suit, rankPart, found = st, strings.TrimSuffix(s, st.String()), true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("card %q has no valid suit", s)
	}
	rank, err := strconv.Atoi(rankPart)
	if err != nil {
		return Card{}, fmt.Errorf("card %q has a bad rank: %w", s, err)
	}
	if rank < AceRank || rank > MaxRank {
		return Card{}, fmt.Errorf("card %q has rank out of range", s)
	}
	return Card{Suit: suit, Rank: uint8(rank)}, nil
}

// MarshalText writes the card as its Code.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MustParse is ParseCard for fixtures; it panics on bad input.
func MustParse(codes ...string) []Card {
	out := make([]Card, len(codes))
	for i, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}
