package board

import "strings"

// Move is an atomic relocation of one piece from an origin square to a
// destination square. Capture marks a jump; the jumped piece lies between
// the two squares on the same diagonal.
type Move struct {
	From    Square
	To      Square
	Capture bool
}

// NewMove creates a non-capturing move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// NewJump creates a capturing move.
func NewJump(from, to Square) Move {
	return Move{From: from, To: to, Capture: true}
}

// Marker returns the notation separator for the move.
func (m Move) Marker() byte {
	if m.Capture {
		return 'x'
	}
	return '-'
}

// String returns the move in notation (e.g., "11-15", "15x24").
func (m Move) String() string {
	return m.From.String() + string(m.Marker()) + m.To.String()
}

// Line describes the diagonal between two squares.
type Line struct {
	Dir      Direction
	Distance int
	Between  Bitboard // squares strictly between origin and destination
}

// LineBetween returns the diagonal connecting from and to, or false if the
// squares do not share a diagonal.
func LineBetween(from, to Square) (Line, bool) {
	if !from.IsValid() || !to.IsValid() || from == to {
		return Line{}, false
	}
	target := SquareBB(to)
	for _, d := range Directions {
		var between Bitboard
		cur := SquareBB(from).Shift(d)
		for n := 1; cur != 0; n++ {
			if cur == target {
				return Line{Dir: d, Distance: n, Between: between}, true
			}
			between |= cur
			cur = cur.Shift(d)
		}
	}
	return Line{}, false
}

// Turn is the ordered, non-empty sequence of moves one piece makes during a
// player's turn: a single step or a chain of jumps.
type Turn []Move

// From returns the origin square of the turn.
func (t Turn) From() Square {
	if len(t) == 0 {
		return NoSquare
	}
	return t[0].From
}

// To returns the final destination of the turn.
func (t Turn) To() Square {
	if len(t) == 0 {
		return NoSquare
	}
	return t[len(t)-1].To
}

// IsCapture returns true if the turn is a capture chain.
func (t Turn) IsCapture() bool {
	return len(t) > 0 && t[0].Capture
}

// Path returns every square the piece lands on, origin first.
func (t Turn) Path() []Square {
	if len(t) == 0 {
		return nil
	}
	path := make([]Square, 0, len(t)+1)
	path = append(path, t[0].From)
	for _, m := range t {
		path = append(path, m.To)
	}
	return path
}

// Equal reports whether both turns have the same origin, ordered
// destinations and capture flags.
func (t Turn) Equal(o Turn) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p is a proper prefix of t.
func (t Turn) HasPrefix(p Turn) bool {
	return len(p) < len(t) && t[:len(p)].Equal(p)
}

// String returns the turn in notation: "a-b" for steps, "axbxc" for chains.
func (t Turn) String() string {
	if len(t) == 0 {
		return "-"
	}
	var sb strings.Builder
	sb.WriteString(t[0].From.String())
	for _, m := range t {
		sb.WriteByte(m.Marker())
		sb.WriteString(m.To.String())
	}
	return sb.String()
}

// Captured returns the squares of the pieces jumped by the turn in s.
func (t Turn) Captured(s State) Bitboard {
	var captured Bitboard
	them := s.Pieces(s.side.Other())
	for _, m := range t {
		if !m.Capture {
			continue
		}
		if line, ok := LineBetween(m.From, m.To); ok {
			captured |= line.Between & them
		}
	}
	return captured
}

// TurnList is a list of turns.
type TurnList []Turn

// Contains returns true if the list contains the turn.
func (tl TurnList) Contains(t Turn) bool {
	for _, l := range tl {
		if l.Equal(t) {
			return true
		}
	}
	return false
}

// Strings returns every turn in notation.
func (tl TurnList) Strings() []string {
	out := make([]string, len(tl))
	for i, t := range tl {
		out[i] = t.String()
	}
	return out
}
