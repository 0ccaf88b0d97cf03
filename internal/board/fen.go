package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the PDN FEN string for the starting position.
const StartFEN = "B:W21,22,23,24,25,26,27,28,29,30,31,32:B1,2,3,4,5,6,7,8,9,10,11,12"

// ParseFEN parses a PDN FEN string, e.g. "B:W18,24,27,28,K10,K15:B12,16,20,K22,K25,K29".
// Fields are separated by ':'. The first field is the side to move; each
// other field starts with a color letter followed by comma separated
// squares, optionally prefixed with K for kings, or ranges like "1-12".
// Red may be written as W (the PDN convention) or R.
func ParseFEN(fen string) (State, error) {
	fen = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(fen), "."))
	parts := strings.Split(fen, ":")
	if len(parts) < 1 || parts[0] == "" {
		return State{}, fmt.Errorf("invalid FEN: empty")
	}

	side, err := parseFENColor(parts[0])
	if err != nil {
		return State{}, fmt.Errorf("invalid side to move: %s", parts[0])
	}

	b := NewBuilder().SideToMove(side)
	for _, field := range parts[1:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		c, err := parseFENColor(field[:1])
		if err != nil {
			return State{}, fmt.Errorf("invalid FEN field: %s", field)
		}
		if err := parseFENPieces(b, c, field[1:]); err != nil {
			return State{}, err
		}
	}
	return b.Build()
}

// MustParseFEN is like ParseFEN but panics on error.
func MustParseFEN(fen string) State {
	s, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return s
}

func parseFENColor(s string) (Color, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B":
		return Black, nil
	case "W", "R":
		return Red, nil
	}
	return NoColor, fmt.Errorf("invalid color: %s", s)
}

// parseFENPieces parses the comma separated square list of one color.
func parseFENPieces(b *Builder, c Color, list string) error {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		kind := Man
		if strings.HasPrefix(tok, "K") || strings.HasPrefix(tok, "k") {
			kind = King
			tok = tok[1:]
		}

		lo, hi := tok, tok
		if i := strings.IndexByte(tok, '-'); i >= 0 {
			lo, hi = tok[:i], tok[i+1:]
		}
		first, err := ParseSquare(lo)
		if err != nil {
			return fmt.Errorf("invalid FEN square: %w", err)
		}
		last, err := ParseSquare(hi)
		if err != nil {
			return fmt.Errorf("invalid FEN square: %w", err)
		}
		if last < first {
			return fmt.Errorf("invalid FEN range: %s", tok)
		}
		for sq := first; sq <= last; sq++ {
			b.Place(NewPiece(kind, c), sq)
		}
	}
	return nil
}

// FEN returns the PDN FEN representation of the state.
func (s State) FEN() string {
	var sb strings.Builder
	if s.side == Black {
		sb.WriteByte('B')
	} else {
		sb.WriteByte('W')
	}
	writeColor := func(letter byte, c Color) {
		sb.WriteByte(':')
		sb.WriteByte(letter)
		first := true
		all := s.Pieces(c)
		for all != 0 {
			sq := all.PopLSB()
			if !first {
				sb.WriteByte(',')
			}
			first = false
			if s.pieces[c][King].IsSet(sq) {
				sb.WriteByte('K')
			}
			sb.WriteString(strconv.Itoa(int(sq)))
		}
	}
	writeColor('W', Red)
	writeColor('B', Black)
	return sb.String()
}
