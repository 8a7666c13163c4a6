package pile

import "github.com/domino14/patience/cards"

type Kind uint8

const (
	Tableau Kind = iota
	// Waste is the column drawn cards land on. It accepts no plays, and its
	// hidden list is draw history rather than face-down cards.
	Waste
)

// A Column is a tableau pile: face-down cards with a face-up run on top.
// Both lists are ordered bottom to top; the last visible card is the one
// that can be played on or taken.
type Column struct {
	kind    Kind
	hidden  []cards.Card
	visible []cards.Card
}

func NewColumn() Column {
	return Column{kind: Tableau}
}

func NewWaste() Column {
	return Column{kind: Waste}
}

// NewColumnFrom builds a column in an arbitrary state. Both slices are
// copied.
func NewColumnFrom(kind Kind, hidden, visible []cards.Card) Column {
	return Column{kind: kind, hidden: Clone(hidden), visible: Clone(visible)}
}

func (c Column) Kind() Kind { return c.kind }

// Play appends run to the visible cards, or returns ErrRuleViolation.
func (c Column) Play(run []cards.Card) (Column, error) {
	if !c.CanPlay(run) {
		return c, ErrRuleViolation
	}
	c.visible = Extend(c.visible, run...)
	return c, nil
}

// CanPlay reports whether run may be placed on this column as a unit. Only
// the first card of the run is checked against the column.
func (c Column) CanPlay(run []cards.Card) bool {
	if c.kind == Waste || len(run) == 0 {
		return false
	}
	first := run[0]
	top, ok := c.Top()
	if !ok {
		return first.Rank == cards.KingRank
	}
	return first.Rank+1 == top.Rank && first.Color() != top.Color()
}

// Turn flips the top hidden card face up if nothing is visible. Waste
// columns never turn.
func (c Column) Turn() Column {
	if c.kind == Waste || len(c.visible) > 0 || len(c.hidden) == 0 {
		return c
	}
	top := c.hidden[len(c.hidden)-1]
	c.hidden = Shrink(c.hidden, 1)
	c.visible = []cards.Card{top}
	return c
}

// Pop removes the top visible card and turns the column.
func (c Column) Pop() (Column, cards.Card) {
	if len(c.visible) == 0 {
		panic("pop from a column with no visible cards")
	}
	top := c.visible[len(c.visible)-1]
	c.visible = Shrink(c.visible, 1)
	return c.Turn(), top
}

// Clear removes the entire visible run and turns the column.
func (c Column) Clear() Column {
	c.visible = nil
	return c.Turn()
}

// Push adds cards to the top of the visible run without any rule check.
// Dealing and drawing use it.
func (c Column) Push(more ...cards.Card) Column {
	c.visible = Extend(c.visible, more...)
	return c
}

// Hide adds cards to the top of the hidden list.
func (c Column) Hide(more ...cards.Card) Column {
	c.hidden = Extend(c.hidden, more...)
	return c
}

// Bury moves every visible card onto the hidden list.
func (c Column) Bury() Column {
	if len(c.visible) == 0 {
		return c
	}
	c.hidden = Extend(c.hidden, c.visible...)
	c.visible = nil
	return c
}

// TakeHidden empties the hidden list and returns what it held.
func (c Column) TakeHidden() (Column, []cards.Card) {
	h := c.hidden
	c.hidden = nil
	return c, h
}

func (c Column) Top() (cards.Card, bool) {
	if len(c.visible) == 0 {
		return cards.Card{}, false
	}
	return c.visible[len(c.visible)-1], true
}

// Visible returns the face-up run bottom to top. Callers must not modify it.
func (c Column) Visible() []cards.Card { return c.visible }

// Hidden returns the face-down cards bottom to top. Callers must not modify
// it.
func (c Column) Hidden() []cards.Card { return c.hidden }

func (c Column) Len() int { return len(c.visible) + len(c.hidden) }
