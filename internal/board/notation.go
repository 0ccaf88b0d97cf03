package board

import (
	"strings"
	"unicode/utf8"
)

// Notation markers.
const (
	StepMarker    = '-'
	CaptureMarker = 'x'
)

func isMarker(c byte) bool {
	return c == StepMarker || c == CaptureMarker || c == 'X'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// runeAt decodes the character starting at byte offset i.
func runeAt(s string, i int) rune {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

// ParseTurn parses turn notation into an ordered move sequence.
//
// Accepted forms:
//   - "11-15"        single step
//   - "15x24"        single jump
//   - "1x10x19"      jump chain, every number after the first is a landing square
//   - "1x10,10x19"   the same chain written as connected segments
//
// Only syntax and square range are checked; legality is the validator's job.
func ParseTurn(text string) (Turn, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, notationErr(text, "empty turn")
	}

	var turn Turn
	if strings.IndexByte(s, ',') >= 0 {
		for _, seg := range strings.Split(s, ",") {
			moves, err := parseChain(text, strings.TrimSpace(seg))
			if err != nil {
				return nil, err
			}
			if len(turn) > 0 && moves[0].From != turn.To() {
				return nil, notationErr(text, "segment %s does not start on %s", moves[0], turn.To())
			}
			turn = append(turn, moves...)
		}
	} else {
		moves, err := parseChain(text, s)
		if err != nil {
			return nil, err
		}
		turn = moves
	}

	capture := turn[0].Capture
	for _, m := range turn[1:] {
		if m.Capture != capture {
			return nil, notationErr(text, "mixed step and capture markers")
		}
	}
	if !capture && len(turn) > 1 {
		return nil, notationErr(text, "a step turn has exactly one move")
	}
	return turn, nil
}

// MustParseTurn is like ParseTurn but panics on error. Intended for tests
// and fixed tables.
func MustParseTurn(text string) Turn {
	t, err := ParseTurn(text)
	if err != nil {
		panic(err)
	}
	return t
}

// parseChain parses "n(<marker>n)+" into moves.
func parseChain(input, s string) ([]Move, error) {
	if s == "" {
		return nil, notationErr(input, "empty segment")
	}

	var (
		squares []Square
		markers []byte
	)
	i := 0
	for {
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if start == i {
			if i == len(s) {
				return nil, notationErr(input, "missing square after %q", s[:i])
			}
			return nil, notationErr(input, "expected square number, found %q", runeAt(s, i))
		}
		sq, err := ParseSquare(s[start:i])
		if err != nil {
			return nil, notationErr(input, "%v", err)
		}
		squares = append(squares, sq)

		if i == len(s) {
			break
		}
		if !isMarker(s[i]) {
			return nil, notationErr(input, "unrecognized separator %q", runeAt(s, i))
		}
		markers = append(markers, s[i])
		i++
	}

	if len(markers) == 0 {
		return nil, notationErr(input, "missing destination square")
	}

	moves := make([]Move, len(markers))
	for k, mk := range markers {
		from, to := squares[k], squares[k+1]
		if from == to {
			return nil, notationErr(input, "origin and destination are both %s", from)
		}
		moves[k] = Move{From: from, To: to, Capture: mk != StepMarker}
	}
	return moves, nil
}

// FormatTurns joins turns with spaces, the way move lists are written.
func FormatTurns(turns []Turn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
