// Package board is the full state of a patience game: seven tableau
// columns, the waste, four foundations, the stock and the redeal count.
//
// A Board is never modified after it is built. Score, Mov and Draw each
// return a new Board; the receiver stays valid and unchanged, so a search
// can keep any number of boards alive at once. Boards share card storage
// with the boards they were derived from (see package pile).
package board

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/patience/cards"
	"github.com/domino14/patience/pile"
	"github.com/domino14/patience/stock"
)

const (
	NumTableau = 7
	// WasteColumn is the index of the column drawn cards go to.
	WasteColumn = 7
	NumColumns  = 8
	NumCards    = 52
)

// ErrExhausted is returned by Draw when the stock is empty and may not be
// redealt again.
var ErrExhausted = errors.New("stock and redeals exhausted")

// Rules are the two tunables of the draw.
type Rules struct {
	MaxRedeals int `yaml:"max_redeals"`
	DrawCount  int `yaml:"draw_count"`
}

// Check rejects rules no game can be played under.
func (r Rules) Check() error {
	if r.MaxRedeals < 0 {
		return errors.New("max-redeals must not be negative")
	}
	if r.DrawCount < 1 {
		return errors.New("draw-count must be at least 1")
	}
	return nil
}

var DefaultRules = Rules{MaxRedeals: 3, DrawCount: 3}

type Board struct {
	rules       Rules
	cols        [NumColumns]pile.Column
	foundations [cards.NumSuits]pile.Foundation
	stock       stock.Stock
	redeals     int
	id          string
}

func empty(rules Rules, id string) *Board {
	b := &Board{rules: rules, id: id}
	for i := 0; i < NumTableau; i++ {
		b.cols[i] = pile.NewColumn()
	}
	b.cols[WasteColumn] = pile.NewWaste()
	return b
}

// Deal lays out a new game from st. Column i receives i+1 cards with only
// the top one face up; the rest of st remains as the stock. st itself is
// not modified.
func Deal(st *stock.Stock, rules Rules) *Board {
	b := empty(rules, st.ID())
	b.stock = *st
	for i := 0; i < NumTableau; i++ {
		for x := i; x < NumTableau; x++ {
			c, ok := b.stock.Draw()
			if !ok {
				panic("not enough cards to deal")
			}
			b.cols[x] = b.cols[x].Hide(c)
		}
	}
	for i := 0; i < NumTableau; i++ {
		b.cols[i] = b.cols[i].Turn()
	}
	return b
}

// copy is shallow; see the package comment for why that is enough.
func (b *Board) copy() *Board {
	nb := *b
	return &nb
}

// CanScore reports whether c can go onto the foundation for its suit.
func (b *Board) CanScore(c cards.Card) bool {
	return b.foundations[c.Suit].CanPlay(c)
}

// Score moves the top visible card of column i to its foundation. The caller
// must check CanScore first; anything else is a bug and panics.
func (b *Board) Score(i int) *Board {
	top, ok := b.cols[i].Top()
	if !ok || !b.CanScore(top) {
		panic(fmt.Sprintf("score from column %d is not legal", i))
	}
	nb := b.copy()
	nb.cols[i], _ = nb.cols[i].Pop()
	f, err := nb.foundations[top.Suit].Play(top)
	if err != nil {
		panic(err)
	}
	nb.foundations[top.Suit] = f
	return nb
}

// CanMov reports whether the whole visible run of column src can be placed
// on tableau column dst.
func (b *Board) CanMov(src, dst int) bool {
	if src < 0 || src >= NumColumns || dst < 0 || dst >= NumTableau || src == dst {
		return false
	}
	run := b.cols[src].Visible()
	if len(run) == 0 {
		return false
	}
	return b.cols[dst].CanPlay(run)
}

// Mov places the visible run of src onto dst and turns src. The caller must
// check CanMov first; anything else is a bug and panics.
func (b *Board) Mov(src, dst int) *Board {
	if !b.CanMov(src, dst) {
		panic(fmt.Sprintf("move from column %d to %d is not legal", src, dst))
	}
	nb := b.copy()
	col, err := nb.cols[dst].Play(nb.cols[src].Visible())
	if err != nil {
		panic(err)
	}
	nb.cols[dst] = col
	nb.cols[src] = nb.cols[src].Clear()
	return nb
}

// CanDraw reports whether Draw would succeed.
func (b *Board) CanDraw() bool {
	if b.stock.Len() > 0 {
		return true
	}
	waste := b.cols[WasteColumn]
	return b.redeals < b.rules.MaxRedeals && waste.Len() > 0
}

// Draw turns over up to DrawCount cards from the stock onto the waste. The
// newest of them is the only one left playable; the previous playable waste
// card and the other new cards go into the waste's history. If the stock is
// empty, the history is first turned back into the stock, as long as
// redeals remain. The card drawn first after a redeal is the one that was
// drawn first in the previous pass.
func (b *Board) Draw() (*Board, error) {
	if !b.CanDraw() {
		return nil, ErrExhausted
	}
	nb := b.copy()
	if nb.stock.Len() == 0 {
		waste, history := nb.cols[WasteColumn].Bury().TakeHidden()
		nb.cols[WasteColumn] = waste
		nb.stock.From(lo.Reverse(pile.Clone(history)))
		nb.redeals++
	}
	drawn := nb.stock.DrawAtMost(nb.rules.DrawCount)
	waste := nb.cols[WasteColumn].Bury()
	waste = waste.Hide(drawn[:len(drawn)-1]...)
	nb.cols[WasteColumn] = waste.Push(drawn[len(drawn)-1])
	return nb, nil
}

// Scored is the number of cards on the foundations.
func (b *Board) Scored() int {
	return lo.SumBy(b.foundations[:], func(f pile.Foundation) int {
		return f.Len()
	})
}

func (b *Board) Win() bool {
	return b.Scored() == NumCards
}

func (b *Board) Column(i int) pile.Column {
	return b.cols[i]
}

func (b *Board) Foundation(s cards.Suit) pile.Foundation {
	return b.foundations[s]
}

// Stock returns a copy of the stock. Drawing from it does not affect b.
func (b *Board) Stock() *stock.Stock {
	st := b.stock
	return &st
}

func (b *Board) Redeals() int {
	return b.redeals
}

func (b *Board) Rules() Rules {
	return b.rules
}

// ID identifies the deal this board descends from.
func (b *Board) ID() string {
	return b.id
}

// Cards returns every card on the board, wherever it is.
func (b *Board) Cards() []cards.Card {
	all := make([]cards.Card, 0, NumCards)
	for _, c := range b.cols {
		all = append(all, c.Hidden()...)
		all = append(all, c.Visible()...)
	}
	for _, f := range b.foundations {
		all = append(all, f.Cards()...)
	}
	return append(all, b.stock.Cards()...)
}

// Validate checks that the board holds exactly one of each card of the deck
// built from ranks.
func (b *Board) Validate(ranks []uint8) error {
	counts := lo.CountValues(b.Cards())
	for _, c := range cards.Deck(ranks) {
		switch counts[c] {
		case 0:
			return fmt.Errorf("card %v is missing", c)
		case 1:
		default:
			return fmt.Errorf("card %v appears %d times", c, counts[c])
		}
		delete(counts, c)
	}
	for c := range counts {
		return fmt.Errorf("card %v is not in the deck", c)
	}
	return nil
}
