package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/cards"
)

const bignum = 1<<63 - 2

// Areas of the board a card can sit in, for hashing purposes. Each column
// contributes a hidden and a visible area; the stock is one more.
const (
	numAreas  = board.NumColumns*2 + 1
	stockArea = numAreas - 1
	// MaxDepth bounds the position of a card within an area.
	MaxDepth = board.NumCards
)

// generate a zobrist hash for a patience position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	drawn uint64

	posTable        [][]uint64
	foundationTable [cards.NumSuits][]uint64
	redealTable     []uint64

	maxRedeals int
}

func (z *Zobrist) Initialize(maxRedeals int) {
	z.maxRedeals = maxRedeals
	z.posTable = make([][]uint64, numAreas*MaxDepth)
	for i := range z.posTable {
		z.posTable[i] = make([]uint64, cards.NumIndices)
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for s := range z.foundationTable {
		z.foundationTable[s] = make([]uint64, cards.MaxRank+1)
		for j := range z.foundationTable[s] {
			z.foundationTable[s][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.redealTable = make([]uint64, maxRedeals+1)
	for i := range z.redealTable {
		z.redealTable[i] = frand.Uint64n(bignum) + 1
	}
	z.drawn = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) MaxRedeals() int {
	return z.maxRedeals
}

func (z *Zobrist) area(key uint64, area int, cs []cards.Card) uint64 {
	base := area * MaxDepth
	for i, c := range cs {
		key ^= z.posTable[base+i][c.Index()]
	}
	return key
}

// Hash returns the key for b. drawn tells whether the position was reached
// by drawing, since the search treats such positions differently.
// Foundations only contribute their size: a foundation's cards are fixed by
// its suit and length.
func (z *Zobrist) Hash(b *board.Board, drawn bool) uint64 {
	key := uint64(0)
	for i := 0; i < board.NumColumns; i++ {
		col := b.Column(i)
		key = z.area(key, 2*i, col.Hidden())
		key = z.area(key, 2*i+1, col.Visible())
	}
	key = z.area(key, stockArea, b.Stock().Cards())
	for _, s := range cards.Suits {
		key ^= z.foundationTable[s][b.Foundation(s).Len()]
	}
	key ^= z.redealTable[b.Redeals()]
	if drawn {
		key ^= z.drawn
	}
	return key
}
