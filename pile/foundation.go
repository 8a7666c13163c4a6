package pile

import "github.com/domino14/patience/cards"

// A Foundation is an ascending same-suit run started by an ace.
type Foundation struct {
	cards []cards.Card
}

func NewFoundation() Foundation {
	return Foundation{}
}

// Play returns the foundation with c on top, or ErrRuleViolation.
func (f Foundation) Play(c cards.Card) (Foundation, error) {
	if !f.CanPlay(c) {
		return f, ErrRuleViolation
	}
	return Foundation{cards: Extend(f.cards, c)}, nil
}

func (f Foundation) CanPlay(c cards.Card) bool {
	top, ok := f.Top()
	if !ok {
		return c.Rank == cards.AceRank
	}
	return c.Rank == top.Rank+1 && c.Suit == top.Suit
}

func (f Foundation) Top() (cards.Card, bool) {
	if len(f.cards) == 0 {
		return cards.Card{}, false
	}
	return f.cards[len(f.cards)-1], true
}

func (f Foundation) Len() int {
	return len(f.cards)
}

// Cards returns the cards bottom to top. Callers must not modify it.
func (f Foundation) Cards() []cards.Card {
	return f.cards
}
