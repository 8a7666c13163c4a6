package board

import (
	"fmt"

	"github.com/domino14/patience/cards"
	"github.com/domino14/patience/pile"
	"github.com/domino14/patience/stock"
)

// ColumnLayout describes one column, both lists bottom card first.
type ColumnLayout struct {
	Hidden  []cards.Card
	Visible []cards.Card
}

// A Layout describes an arbitrary position. Index WasteColumn of Columns is
// the waste, whose Hidden list is its draw history. Foundations are indexed
// by suit. Stock is bottom card first, so its last card is drawn next.
type Layout struct {
	Columns     [NumColumns]ColumnLayout
	Foundations [cards.NumSuits][]cards.Card
	Stock       []cards.Card
	Redeals     int
	ID          string
}

// FromLayout builds a board from l. The foundations are replayed card by
// card, so they must be legal; the total card count must be NumCards.
// Tableau runs are taken as given. rules must pass Check.
func FromLayout(rules Rules, l Layout) (*Board, error) {
	if err := rules.Check(); err != nil {
		return nil, err
	}
	b := empty(rules, l.ID)
	for i, cl := range l.Columns {
		kind := pile.Tableau
		if i == WasteColumn {
			kind = pile.Waste
			if len(cl.Visible) > 1 {
				return nil, fmt.Errorf("waste can show at most one card, got %d", len(cl.Visible))
			}
		} else if len(cl.Visible) == 0 && len(cl.Hidden) > 0 {
			return nil, fmt.Errorf("column %d has hidden cards but nothing visible", i)
		}
		b.cols[i] = pile.NewColumnFrom(kind, cl.Hidden, cl.Visible)
	}
	for s, fcards := range l.Foundations {
		for _, c := range fcards {
			if c.Suit != cards.Suit(s) {
				return nil, fmt.Errorf("card %v on the %v foundation", c, cards.Suit(s))
			}
			f, err := b.foundations[s].Play(c)
			if err != nil {
				return nil, fmt.Errorf("foundation %v cannot take %v: %w", cards.Suit(s), c, err)
			}
			b.foundations[s] = f
		}
	}
	b.stock = *stock.FromCards(l.Stock)
	if l.Redeals < 0 || l.Redeals > rules.MaxRedeals {
		return nil, fmt.Errorf("redeals %d out of range", l.Redeals)
	}
	b.redeals = l.Redeals
	if n := len(b.Cards()); n != NumCards {
		return nil, fmt.Errorf("layout has %d cards, want %d", n, NumCards)
	}
	return b, nil
}

// Layout is the inverse of FromLayout.
func (b *Board) Layout() Layout {
	l := Layout{Redeals: b.redeals, ID: b.id}
	for i, c := range b.cols {
		l.Columns[i] = ColumnLayout{
			Hidden:  pile.Clone(c.Hidden()),
			Visible: pile.Clone(c.Visible()),
		}
	}
	for s, f := range b.foundations {
		l.Foundations[s] = pile.Clone(f.Cards())
	}
	l.Stock = pile.Clone(b.stock.Cards())
	return l
}
