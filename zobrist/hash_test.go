package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/cards"
	"github.com/domino14/patience/stock"
)

func newZobrist() *Zobrist {
	z := &Zobrist{}
	z.Initialize(board.DefaultRules.MaxRedeals)
	return z
}

func TestSamePositionSameHash(t *testing.T) {
	is := is.New(t)
	z := newZobrist()
	b1 := board.Deal(stock.NewSeeded(cards.ReferenceRanks, 5), board.DefaultRules)
	b2 := board.Deal(stock.NewSeeded(cards.ReferenceRanks, 5), board.DefaultRules)
	is.Equal(z.Hash(b1, false), z.Hash(b2, false))

	b3, err := board.FromLayout(board.DefaultRules, b1.Layout())
	is.NoErr(err)
	is.Equal(z.Hash(b1, true), z.Hash(b3, true))
}

func TestHashAfterDrawing(t *testing.T) {
	is := is.New(t)
	z := newZobrist()
	b := board.Deal(stock.NewSeeded(cards.ReferenceRanks, 6), board.DefaultRules)
	h := z.Hash(b, false)
	is.True(h != z.Hash(b, true))

	d, err := b.Draw()
	is.NoErr(err)
	is.True(z.Hash(d, false) != h)

	// cycling the whole stock back to the start only differs by the redeal
	// count.
	cur := b
	for i := 0; i < 9; i++ {
		cur, err = cur.Draw()
		is.NoErr(err)
	}
	is.Equal(cur.Redeals(), 1)
	is.True(z.Hash(cur, false) != z.Hash(d, false))
}

func TestDifferentDealsDiffer(t *testing.T) {
	is := is.New(t)
	z := newZobrist()
	seen := map[uint64]bool{}
	for seed := uint64(0); seed < 50; seed++ {
		b := board.Deal(stock.NewSeeded(cards.ReferenceRanks, seed), board.DefaultRules)
		h := z.Hash(b, false)
		is.True(!seen[h]) // collisions are astronomically unlikely
		seen[h] = true
	}
}
