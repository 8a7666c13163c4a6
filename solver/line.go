package solver

import (
	"fmt"
	"strings"

	"github.com/domino14/patience/board"
)

// Line is a sequence of moves leading from a position to a win.
type Line struct {
	Moves []board.Move
}

func (l *Line) Clear() {
	l.Moves = nil
}

// Update sets the line to m followed by child.
func (l *Line) Update(m board.Move, child Line) {
	moves := make([]board.Move, 0, len(child.Moves)+1)
	moves = append(moves, m)
	l.Moves = append(moves, child.Moves...)
}

func (l Line) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Line; %d moves\n", len(l.Moves))
	for i, m := range l.Moves {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, m)
	}
	return sb.String()
}

// NLBString has no line breaks.
func (l Line) NLBString() string {
	strs := make([]string, len(l.Moves))
	for i, m := range l.Moves {
		strs[i] = m.String()
	}
	return strings.Join(strs, "; ")
}

// Replay applies moves to b in order, checking each one.
func Replay(b *board.Board, moves []board.Move) (*board.Board, error) {
	var err error
	for i, m := range moves {
		b, err = b.Apply(m)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return b, nil
}
