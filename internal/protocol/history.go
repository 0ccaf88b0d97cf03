package protocol

import (
	"strconv"
	"strings"

	"github.com/hailam/checkers/internal/board"
)

// formatHistory numbers the turns played on b in PDN style, black's turn
// first: "1. 10-14 23-18 2. 14x23". A game starting with red to move opens
// with "1... ".
func formatHistory(b *board.Board) string {
	turns := b.Turns()
	if len(turns) == 0 {
		return "(no turns)"
	}

	var sb strings.Builder
	number := 1
	side := b.InitialState().SideToMove()
	for i, t := range turns {
		switch {
		case side == board.Black:
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(number))
			sb.WriteString(". ")
		case i == 0:
			sb.WriteString(strconv.Itoa(number))
			sb.WriteString("... ")
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(t.String())

		if side == board.Red {
			number++
		}
		side = side.Other()
	}
	return sb.String()
}
