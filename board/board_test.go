package board

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/patience/cards"
	"github.com/domino14/patience/stock"
)

func run(s cards.Suit, from, to uint8) []cards.Card {
	out := []cards.Card{}
	for r := from; r <= to; r++ {
		out = append(out, cards.New(s, r))
	}
	return out
}

func freshBoard(seed uint64) *Board {
	return Deal(stock.NewSeeded(cards.ReferenceRanks, seed), DefaultRules)
}

// allMoves lists every legal move from b.
func allMoves(b *Board) []Move {
	moves := []Move{}
	for i := 0; i < NumColumns; i++ {
		if b.Legal(ScoreMove(i)) {
			moves = append(moves, ScoreMove(i))
		}
	}
	for s := 0; s < NumColumns; s++ {
		for d := 0; d < NumTableau; d++ {
			if b.Legal(MovMove(s, d)) {
				moves = append(moves, MovMove(s, d))
			}
		}
	}
	if b.Legal(DrawMove()) {
		moves = append(moves, DrawMove())
	}
	return moves
}

func TestFreshDeal(t *testing.T) {
	is := is.New(t)
	b := freshBoard(1)
	inColumns := 0
	for i := 0; i < NumTableau; i++ {
		col := b.Column(i)
		is.Equal(col.Len(), i+1)
		is.Equal(len(col.Visible()), 1)
		is.Equal(len(col.Hidden()), i)
		inColumns += col.Len()
	}
	is.Equal(inColumns, 28)
	is.Equal(b.Column(WasteColumn).Len(), 0)
	is.Equal(b.Stock().Len(), 24)
	is.Equal(b.Scored(), 0)
	is.True(!b.Win())
	is.Equal(b.Redeals(), 0)
	is.NoErr(b.Validate(cards.ReferenceRanks))
}

func TestDealIDComesFromStock(t *testing.T) {
	is := is.New(t)
	st := stock.NewSeeded(cards.ReferenceRanks, 7)
	b := Deal(st, DefaultRules)
	is.Equal(b.ID(), st.ID())
	// dealing does not consume the caller's stock.
	is.Equal(st.Len(), 52)
}

func TestDeckIntegrityOnRandomWalks(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(99))
	for game := 0; game < 20; game++ {
		b := freshBoard(uint64(game))
		for step := 0; step < 300; step++ {
			moves := allMoves(b)
			if len(moves) == 0 {
				break
			}
			m := moves[rng.Intn(len(moves))]
			before := b.Scored()
			nb, err := b.Apply(m)
			is.NoErr(err)
			is.NoErr(nb.Validate(cards.ReferenceRanks))
			if m.IsScore() {
				is.Equal(nb.Scored(), before+1)
			} else {
				is.Equal(nb.Scored(), before)
			}
			b = nb
		}
	}
}

func TestTransitionsLeaveReceiverAlone(t *testing.T) {
	is := is.New(t)
	b := freshBoard(3)
	snapshot := b.Layout()
	for _, m := range allMoves(b) {
		_, err := b.Apply(m)
		is.NoErr(err)
		is.Equal(b.Layout(), snapshot)
	}
	d1, err := b.Draw()
	is.NoErr(err)
	d2, err := d1.Draw()
	is.NoErr(err)
	_, err = d1.Draw()
	is.NoErr(err)
	is.Equal(d1.Stock().Len(), 21)
	is.Equal(d2.Stock().Len(), 18)
	is.Equal(b.Layout(), snapshot)
}

func TestDrawThree(t *testing.T) {
	is := is.New(t)
	l := Layout{
		Foundations: [4][]cards.Card{
			run(cards.Spade, 1, 13), run(cards.Heart, 1, 13),
			run(cards.Diamond, 1, 13), run(cards.Club, 1, 8),
		},
		Stock: cards.MustParse("13C", "12C", "11C", "10C", "9C"),
	}
	b, err := FromLayout(DefaultRules, l)
	is.NoErr(err)

	b, err = b.Draw()
	is.NoErr(err)
	waste := b.Column(WasteColumn)
	// 9C, 10C, 11C come off the top in that order.
	is.Equal(waste.Visible(), cards.MustParse("11C"))
	is.Equal(waste.Hidden(), cards.MustParse("9C", "10C"))
	is.Equal(b.Stock().Len(), 2)

	b, err = b.Draw()
	is.NoErr(err)
	waste = b.Column(WasteColumn)
	is.Equal(waste.Visible(), cards.MustParse("13C"))
	is.Equal(waste.Hidden(), cards.MustParse("9C", "10C", "11C", "12C"))
	is.Equal(b.Stock().Len(), 0)

	// redeal: the first card drawn last pass is drawn first again.
	b, err = b.Draw()
	is.NoErr(err)
	is.Equal(b.Redeals(), 1)
	waste = b.Column(WasteColumn)
	is.Equal(waste.Visible(), cards.MustParse("11C"))
	is.Equal(waste.Hidden(), cards.MustParse("9C", "10C"))
	is.Equal(b.Stock().Cards(), cards.MustParse("13C", "12C"))
	is.NoErr(b.Validate(cards.StandardRanks))
}

func TestDrawExhaustion(t *testing.T) {
	is := is.New(t)
	b := freshBoard(11)
	perPass := b.Stock().Len() / DefaultRules.DrawCount
	passes := DefaultRules.MaxRedeals + 1
	var err error
	for i := 0; i < perPass*passes; i++ {
		b, err = b.Draw()
		is.NoErr(err)
	}
	is.Equal(b.Redeals(), DefaultRules.MaxRedeals)
	is.Equal(b.Stock().Len(), 0)
	is.True(!b.CanDraw())
	_, err = b.Draw()
	is.True(errors.Is(err, ErrExhausted))
}

func TestNothingToRedeal(t *testing.T) {
	is := is.New(t)
	l := Layout{
		Foundations: [4][]cards.Card{
			run(cards.Spade, 1, 13), run(cards.Heart, 1, 13),
			run(cards.Diamond, 1, 13), run(cards.Club, 1, 12),
		},
	}
	l.Columns[0].Visible = cards.MustParse("13C")
	b, err := FromLayout(DefaultRules, l)
	is.NoErr(err)
	_, err = b.Draw()
	is.Equal(err, ErrExhausted)
}

func TestScoreAndWin(t *testing.T) {
	is := is.New(t)
	l := Layout{
		Foundations: [4][]cards.Card{
			run(cards.Spade, 1, 12), run(cards.Heart, 1, 13),
			run(cards.Diamond, 1, 13), run(cards.Club, 1, 13),
		},
	}
	l.Columns[4].Hidden = nil
	l.Columns[4].Visible = cards.MustParse("13S")
	b, err := FromLayout(DefaultRules, l)
	is.NoErr(err)
	is.Equal(b.Scored(), 51)
	is.True(!b.Win())
	is.True(b.CanScore(cards.New(cards.Spade, 13)))

	w := b.Score(4)
	is.Equal(w.Scored(), 52)
	is.True(w.Win())
	is.Equal(w.Column(4).Len(), 0)
	is.True(!b.Win())
}

func TestScorePanicsWhenIllegal(t *testing.T) {
	is := is.New(t)
	b := freshBoard(5)
	defer func() {
		is.True(recover() != nil)
	}()
	for i := 0; i < NumColumns; i++ {
		if !b.Legal(ScoreMove(i)) {
			b.Score(i)
		}
	}
}

func TestMovTurnsSource(t *testing.T) {
	is := is.New(t)
	l := Layout{
		Foundations: [4][]cards.Card{
			run(cards.Spade, 1, 11), run(cards.Heart, 1, 13),
			run(cards.Diamond, 1, 12), run(cards.Club, 1, 13),
		},
	}
	l.Columns[0] = ColumnLayout{Hidden: cards.MustParse("13D"), Visible: cards.MustParse("12S")}
	l.Columns[1] = ColumnLayout{Visible: cards.MustParse("13S")}
	b, err := FromLayout(DefaultRules, l)
	is.NoErr(err)

	// the queen of spades cannot go on the king of spades.
	is.True(!b.CanMov(0, 1))
	// but the king of spades can go to an empty column.
	is.True(b.CanMov(1, 2))
	// never onto the waste, or onto itself.
	is.True(!b.CanMov(1, WasteColumn))
	is.True(!b.CanMov(1, 1))

	nb := b.Mov(1, 2)
	is.Equal(nb.Column(1).Len(), 0)
	is.Equal(nb.Column(2).Visible(), cards.MustParse("13S"))

	nb2 := nb.Score(0)
	is.Equal(nb2.Column(0).Visible(), cards.MustParse("13D"))
	is.Equal(len(nb2.Column(0).Hidden()), 0)
}

func TestApplyRejects(t *testing.T) {
	is := is.New(t)
	b := freshBoard(8)
	_, err := b.Apply(MovMove(3, 3))
	is.True(errors.Is(err, ErrIllegalMove))
	_, err = b.Apply(ScoreMove(12))
	is.True(errors.Is(err, ErrIllegalMove))
}

func TestParseMove(t *testing.T) {
	is := is.New(t)
	for _, m := range []Move{ScoreMove(7), MovMove(7, 2), DrawMove()} {
		p, err := ParseMove(m.String())
		is.NoErr(err)
		is.Equal(p, m)
	}
	_, err := ParseMove("mov 1")
	is.True(err != nil)
	_, err = ParseMove("jump 1 2")
	is.True(err != nil)
}

func TestLayoutRoundTrip(t *testing.T) {
	is := is.New(t)
	b := freshBoard(21)
	b, err := b.Draw()
	is.NoErr(err)
	b2, err := FromLayout(b.Rules(), b.Layout())
	is.NoErr(err)
	is.Equal(b2.Layout(), b.Layout())
}

func TestFromLayoutRejectsBadCounts(t *testing.T) {
	is := is.New(t)
	_, err := FromLayout(DefaultRules, Layout{Stock: cards.MustParse("1S")})
	is.True(err != nil)
}

func TestFromLayoutRejectsBadRules(t *testing.T) {
	is := is.New(t)
	l := freshBoard(2).Layout()
	for _, r := range []Rules{{}, {MaxRedeals: 3}, {MaxRedeals: -1, DrawCount: 3}} {
		b, err := FromLayout(r, l)
		is.True(err != nil)
		is.Equal(b, nil)
	}
	b, err := FromLayout(Rules{MaxRedeals: 0, DrawCount: 1}, l)
	is.NoErr(err)
	nb, err := b.Draw()
	is.NoErr(err)
	is.Equal(nb.Stock().Len(), 23)
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	txt := freshBoard(2).ToDisplayText()
	is.True(strings.Contains(txt, "Stock: 24"))
	is.True(strings.Contains(txt, "##"))
}
