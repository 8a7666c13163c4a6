package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Action uint8

const (
	ActionScore Action = iota
	ActionMove
	ActionDraw
)

var ErrIllegalMove = errors.New("illegal move")

// A Move is one step of play. Src is used by scores and moves, Dst only by
// moves.
type Move struct {
	Action Action
	Src    int
	Dst    int
}

func ScoreMove(col int) Move { return Move{Action: ActionScore, Src: col} }

func MovMove(src, dst int) Move { return Move{Action: ActionMove, Src: src, Dst: dst} }

func DrawMove() Move { return Move{Action: ActionDraw} }

func (m Move) IsScore() bool { return m.Action == ActionScore }

func (m Move) IsDraw() bool { return m.Action == ActionDraw }

func (m Move) String() string {
	switch m.Action {
	case ActionScore:
		return fmt.Sprintf("score %d", m.Src)
	case ActionMove:
		return fmt.Sprintf("mov %d %d", m.Src, m.Dst)
	case ActionDraw:
		return "draw"
	}
	return "?"
}

// ParseMove reads the output of Move.String.
func ParseMove(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Move{}, errors.New("empty move")
	}
	ints := make([]int, 0, 2)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Move{}, fmt.Errorf("bad column %q: %w", f, err)
		}
		ints = append(ints, n)
	}
	switch {
	case fields[0] == "draw" && len(ints) == 0:
		return DrawMove(), nil
	case fields[0] == "score" && len(ints) == 1:
		return ScoreMove(ints[0]), nil
	case fields[0] == "mov" && len(ints) == 2:
		return MovMove(ints[0], ints[1]), nil
	}
	return Move{}, fmt.Errorf("cannot parse move %q", s)
}

// Legal reports whether m can be applied to b.
func (b *Board) Legal(m Move) bool {
	switch m.Action {
	case ActionScore:
		if m.Src < 0 || m.Src >= NumColumns {
			return false
		}
		top, ok := b.cols[m.Src].Top()
		return ok && b.CanScore(top)
	case ActionMove:
		return b.CanMov(m.Src, m.Dst)
	case ActionDraw:
		return b.CanDraw()
	}
	return false
}

// Apply is the checked form of Score, Mov and Draw.
func (b *Board) Apply(m Move) (*Board, error) {
	if !b.Legal(m) {
		return nil, fmt.Errorf("%w: %v", ErrIllegalMove, m)
	}
	switch m.Action {
	case ActionScore:
		return b.Score(m.Src), nil
	case ActionMove:
		return b.Mov(m.Src, m.Dst), nil
	default:
		return b.Draw()
	}
}
