package pile

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/patience/cards"
)

func card(code string) cards.Card {
	return cards.MustParse(code)[0]
}

func allCards() []cards.Card {
	// Both rank sets together cover ranks 1 to 14.
	return append(cards.Deck(cards.StandardRanks), cards.Deck([]uint8{14})...)
}

func TestColumnScenario(t *testing.T) {
	is := is.New(t)
	c := NewColumnFrom(Tableau, nil, cards.MustParse("8D"))

	is.True(c.CanPlay(cards.MustParse("7C")))
	is.True(!c.CanPlay(cards.MustParse("8C")))
	is.True(!c.CanPlay(cards.MustParse("7H")))

	n, err := c.Play(cards.MustParse("7C"))
	is.NoErr(err)
	is.Equal(n.Visible(), cards.MustParse("8D", "7C"))

	_, err = c.Play(cards.MustParse("7H"))
	is.Equal(err, ErrRuleViolation)
}

func TestColumnAcceptanceLaw(t *testing.T) {
	is := is.New(t)
	empty := NewColumn()
	for _, top := range allCards() {
		col := NewColumnFrom(Tableau, nil, []cards.Card{top})
		for _, c := range allCards() {
			want := c.Rank+1 == top.Rank && c.Color() != top.Color()
			is.Equal(col.CanPlay([]cards.Card{c}), want)
		}
	}
	for _, c := range allCards() {
		is.Equal(empty.CanPlay([]cards.Card{c}), c.Rank == cards.KingRank)
	}
}

func TestColumnPlayRun(t *testing.T) {
	is := is.New(t)
	c := NewColumnFrom(Tableau, cards.MustParse("2S"), cards.MustParse("10S"))
	run := cards.MustParse("9H", "8C", "7D")
	n, err := c.Play(run)
	is.NoErr(err)
	is.Equal(n.Visible(), cards.MustParse("10S", "9H", "8C", "7D"))
	is.Equal(n.Hidden(), cards.MustParse("2S"))
	// the original is unchanged.
	is.Equal(c.Visible(), cards.MustParse("10S"))

	// a king run goes onto an empty column.
	e, err := NewColumn().Play(cards.MustParse("13H", "12S"))
	is.NoErr(err)
	is.Equal(len(e.Visible()), 2)
}

func TestColumnTurn(t *testing.T) {
	is := is.New(t)
	c := NewColumnFrom(Tableau, cards.MustParse("3S", "4H"), cards.MustParse("9C"))
	c2, top := c.Pop()
	is.Equal(top, card("9C"))
	is.Equal(c2.Visible(), cards.MustParse("4H"))
	is.Equal(c2.Hidden(), cards.MustParse("3S"))

	c3 := c2.Clear()
	is.Equal(c3.Visible(), cards.MustParse("3S"))
	is.Equal(len(c3.Hidden()), 0)

	c4 := c3.Clear()
	is.Equal(c4.Len(), 0)
	_, ok := c4.Top()
	is.True(!ok)
}

func TestWasteNeverTurnsOrAccepts(t *testing.T) {
	is := is.New(t)
	w := NewWaste().Hide(cards.MustParse("4S", "5S")...).Push(card("13D"))
	is.True(!w.CanPlay(cards.MustParse("12C")))
	w2, top := w.Pop()
	is.Equal(top, card("13D"))
	is.Equal(len(w2.Visible()), 0)
	is.Equal(w2.Hidden(), cards.MustParse("4S", "5S"))

	w3 := w.Bury()
	is.Equal(w3.Hidden(), cards.MustParse("4S", "5S", "13D"))
	w4, h := w3.TakeHidden()
	is.Equal(h, cards.MustParse("4S", "5S", "13D"))
	is.Equal(w4.Len(), 0)
}

func TestColumnPersistence(t *testing.T) {
	is := is.New(t)
	base := NewColumnFrom(Tableau, nil, cards.MustParse("10S", "9H"))
	a, _ := base.Pop()
	b := a.Push(card("9D"))
	c := a.Push(card("9H"))
	is.Equal(base.Visible(), cards.MustParse("10S", "9H"))
	is.Equal(b.Visible(), cards.MustParse("10S", "9D"))
	is.Equal(c.Visible(), cards.MustParse("10S", "9H"))
}

func TestFoundationScenario(t *testing.T) {
	is := is.New(t)
	f := NewFoundation()
	for _, s := range cards.Suits {
		is.True(f.CanPlay(cards.New(s, 1)))
		for r := uint8(2); r <= cards.MaxRank; r++ {
			is.True(!f.CanPlay(cards.New(s, r)))
		}
	}
	f, err := f.Play(card("1H"))
	is.NoErr(err)
	is.True(f.CanPlay(card("2H")))
	is.True(!f.CanPlay(card("2S")))
	is.True(!f.CanPlay(card("2D")))
	is.True(!f.CanPlay(card("2C")))
	_, err = f.Play(card("2S"))
	is.Equal(err, ErrRuleViolation)

	f2, err := f.Play(card("2H"))
	is.NoErr(err)
	is.Equal(f2.Len(), 2)
	is.Equal(f.Len(), 1)
}

func TestFoundationAcceptanceLaw(t *testing.T) {
	is := is.New(t)
	for _, top := range allCards() {
		f := Foundation{cards: []cards.Card{top}}
		for _, c := range allCards() {
			want := c.Rank == top.Rank+1 && c.Suit == top.Suit
			is.Equal(f.CanPlay(c), want)
		}
	}
}

func TestExtendExactCapacity(t *testing.T) {
	is := is.New(t)
	s := Extend(nil, cards.MustParse("1S", "2S")...)
	is.Equal(len(s), cap(s))
	s = Shrink(s, 1)
	is.Equal(len(s), 1)
	is.Equal(cap(s), 1)
}
