package board

import (
	"fmt"
	"strings"

	"github.com/domino14/patience/cards"
)

const cellWidth = 5

func cell(s string) string {
	if n := len([]rune(s)); n < cellWidth {
		return s + strings.Repeat(" ", cellWidth-n)
	}
	return s
}

// ToDisplayText renders the board for a terminal. Face-down cards show as
// "##". The waste shows only its playable card and the size of its history.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder

	sb.WriteString("Foundations: ")
	for _, s := range cards.Suits {
		f := b.foundations[s]
		top, ok := f.Top()
		if ok {
			sb.WriteString(cell(top.String()))
		} else {
			sb.WriteString(cell("--" + s.String()))
		}
	}
	sb.WriteString("\n")

	waste := b.cols[WasteColumn]
	wtop, ok := waste.Top()
	wstr := "--"
	if ok {
		wstr = wtop.String()
	}
	fmt.Fprintf(&sb, "Stock: %d  Waste: %s (+%d)  Redeals: %d/%d  Scored: %d\n\n",
		b.stock.Len(), wstr, len(waste.Hidden()), b.redeals, b.rules.MaxRedeals, b.Scored())

	rows := 0
	for i := 0; i < NumTableau; i++ {
		if n := b.cols[i].Len(); n > rows {
			rows = n
		}
	}
	for i := 0; i < NumTableau; i++ {
		sb.WriteString(cell(fmt.Sprintf("%d", i)))
	}
	sb.WriteString("\n")
	for r := 0; r < rows; r++ {
		for i := 0; i < NumTableau; i++ {
			col := b.cols[i]
			nh := len(col.Hidden())
			switch {
			case r < nh:
				sb.WriteString(cell("##"))
			case r < col.Len():
				sb.WriteString(cell(col.Visible()[r-nh].String()))
			default:
				sb.WriteString(cell(""))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.ToDisplayText()
}
