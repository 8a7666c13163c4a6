package solver

import (
	"github.com/domino14/patience/board"
	"github.com/domino14/patience/cards"
)

// GenMoves lists the moves the search tries from b, in the order it tries
// them: scores by column, then moves by source and destination, then a draw.
//
// If drawn is set, b was reached by a draw alone. Unless the new waste card
// can be scored or placed, everything but another draw was already
// available before the draw, so only the draw is returned.
func GenMoves(b *board.Board, drawn bool) []board.Move {
	moves := []board.Move{}
	if drawn && !wasteCardPlayable(b) {
		if b.CanDraw() {
			moves = append(moves, board.DrawMove())
		}
		return moves
	}

	for i := 0; i < board.NumColumns; i++ {
		top, ok := b.Column(i).Top()
		if ok && b.CanScore(top) {
			moves = append(moves, board.ScoreMove(i))
		}
	}
	for src := 0; src < board.NumColumns; src++ {
		if src != board.WasteColumn && bareKing(b, src) {
			continue
		}
		for dst := 0; dst < board.NumTableau; dst++ {
			if b.CanMov(src, dst) {
				moves = append(moves, board.MovMove(src, dst))
			}
		}
	}
	if b.CanDraw() {
		moves = append(moves, board.DrawMove())
	}
	return moves
}

func wasteCardPlayable(b *board.Board) bool {
	top, ok := b.Column(board.WasteColumn).Top()
	if !ok {
		return false
	}
	if b.CanScore(top) {
		return true
	}
	for dst := 0; dst < board.NumTableau; dst++ {
		if b.CanMov(board.WasteColumn, dst) {
			return true
		}
	}
	return false
}

// bareKing reports whether column i is a king-headed run with nothing under
// it. Moving such a run only trades one empty column for another.
func bareKing(b *board.Board, i int) bool {
	col := b.Column(i)
	vis := col.Visible()
	return len(vis) > 0 && vis[0].Rank == cards.KingRank && len(col.Hidden()) == 0
}
