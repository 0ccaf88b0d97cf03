package board

import (
	"errors"
	"fmt"
	"strings"
)

// Initial occupancy of the classical starting position.
const (
	InitialBlackMen Bitboard = Row0 | Row1 | Row2
	InitialRedMen   Bitboard = Row5 | Row6 | Row7
)

// State is an immutable snapshot of a checkers position: one occupancy set
// per piece class plus the player to move. It is a comparable value; copies
// never alias.
type State struct {
	pieces [2][2]Bitboard // [Color][Kind]
	side   Color
}

// NewState returns the classical starting position. Black occupies squares
// 1-12 and moves first; red occupies squares 21-32.
func NewState() State {
	var s State
	s.pieces[Black][Man] = InitialBlackMen
	s.pieces[Red][Man] = InitialRedMen
	s.side = Black
	return s
}

// EmptyState returns a board with no pieces and black to move.
func EmptyState() State {
	return State{side: Black}
}

// RedMen returns the red men bitboard.
func (s State) RedMen() Bitboard { return s.pieces[Red][Man] }

// RedKings returns the red kings bitboard.
func (s State) RedKings() Bitboard { return s.pieces[Red][King] }

// BlackMen returns the black men bitboard.
func (s State) BlackMen() Bitboard { return s.pieces[Black][Man] }

// BlackKings returns the black kings bitboard.
func (s State) BlackKings() Bitboard { return s.pieces[Black][King] }

// SideToMove returns the player to move.
func (s State) SideToMove() Color { return s.side }

// Men returns the men of the given color.
func (s State) Men(c Color) Bitboard { return s.pieces[c][Man] }

// Kings returns the kings of the given color.
func (s State) Kings(c Color) Bitboard { return s.pieces[c][King] }

// Pieces returns every piece of the given color.
func (s State) Pieces(c Color) Bitboard {
	return s.pieces[c][Man] | s.pieces[c][King]
}

// Occupied returns every occupied square.
func (s State) Occupied() Bitboard {
	return s.Pieces(Black) | s.Pieces(Red)
}

// EmptySquares returns every unoccupied playable square.
func (s State) EmptySquares() Bitboard {
	return AllSquares &^ s.Occupied()
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (s State) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	for c := Black; c <= Red; c++ {
		for k := Man; k <= King; k++ {
			if s.pieces[c][k]&bb != 0 {
				return NewPiece(k, c)
			}
		}
	}
	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (s State) IsEmpty(sq Square) bool {
	return s.Occupied()&SquareBB(sq) == 0
}

// WithSideToMove returns a copy of the state with the given player to move.
// Colors other than Black and Red leave the state unchanged.
func (s State) WithSideToMove(c Color) State {
	if c != Black && c != Red {
		return s
	}
	s.side = c
	return s
}

// with returns a copy with the piece placed on sq (any previous occupant removed).
func (s State) with(p Piece, sq Square) State {
	s = s.without(sq)
	if p != NoPiece {
		s.pieces[p.Color()][p.Kind()] |= SquareBB(sq)
	}
	return s
}

// without returns a copy with sq cleared for every class.
func (s State) without(sq Square) State {
	bb := SquareBB(sq)
	for c := Black; c <= Red; c++ {
		s.pieces[c][Man] &^= bb
		s.pieces[c][King] &^= bb
	}
	return s
}

// Errors reported by Validate.
var (
	ErrOverlappingPieces = errors.New("board: square occupied by more than one piece class")
	ErrManOnPromotionRow = errors.New("board: man standing on its promotion row")
	ErrInvalidSide       = errors.New("board: invalid side to move")
)

// Validate checks the structural invariants of the state.
func (s State) Validate() error {
	var seen Bitboard
	for c := Black; c <= Red; c++ {
		for k := Man; k <= King; k++ {
			if seen&s.pieces[c][k] != 0 {
				return ErrOverlappingPieces
			}
			seen |= s.pieces[c][k]
		}
	}
	if s.side != Black && s.side != Red {
		return ErrInvalidSide
	}
	for c := Black; c <= Red; c++ {
		if s.pieces[c][Man]&c.PromotionRow() != 0 {
			return fmt.Errorf("%w: %s", ErrManOnPromotionRow, c)
		}
	}
	return nil
}

// Material returns the piece counts for the given color.
func (s State) Material(c Color) (men, kings int) {
	return s.pieces[c][Man].PopCount(), s.pieces[c][King].PopCount()
}

// String returns a visual representation of the state.
func (s State) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		sb.WriteString("  ")
		for col := 0; col < 8; col++ {
			sq := SquareAt(row, col)
			if sq == NoSquare {
				sb.WriteString("  ")
				continue
			}
			sb.WriteString(s.PieceAt(sq).String())
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "   %2d-%2d\n", row*4+1, row*4+4)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", s.side)
	fmt.Fprintf(&sb, "FEN: %s\n", s.FEN())
	fmt.Fprintf(&sb, "Hash: %016x\n", s.Hash())
	return sb.String()
}
