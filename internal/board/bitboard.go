package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents the 32 playable squares, one bit per square.
// Bit 0 = square 1, bit 31 = square 32. Rows hold four bits each; on even
// rows the dark squares sit in columns 1,3,5,7 and on odd rows in 0,2,4,6.
type Bitboard uint32

// Row masks
const (
	Row0 Bitboard = 0x0000000F
	Row1 Bitboard = 0x000000F0
	Row2 Bitboard = 0x00000F00
	Row3 Bitboard = 0x0000F000
	Row4 Bitboard = 0x000F0000
	Row5 Bitboard = 0x00F00000
	Row6 Bitboard = 0x0F000000
	Row7 Bitboard = 0xF0000000
)

// Special masks
const (
	Empty      Bitboard = 0
	AllSquares Bitboard = 0xFFFFFFFF

	EvenRows Bitboard = Row0 | Row2 | Row4 | Row6
	OddRows  Bitboard = Row1 | Row3 | Row5 | Row7

	// Edges: the last square of an even row sits in column 7,
	// the first square of an odd row in column 0.
	RightEdge Bitboard = 0x08080808
	LeftEdge  Bitboard = 0x10101010

	// Promotion rows. Black men advance toward Row7, red men toward Row0.
	BlackBackRank = Row0
	RedBackRank   = Row7
)

// Direction is one of the four diagonals.
type Direction uint8

const (
	NorthWest Direction = iota
	NorthEast
	SouthWest
	SouthEast
)

// Directions lists all diagonals in generation order.
var Directions = [4]Direction{NorthWest, NorthEast, SouthWest, SouthEast}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case NorthWest:
		return "NorthWest"
	case NorthEast:
		return "NorthEast"
	case SouthWest:
		return "SouthWest"
	case SouthEast:
		return "SouthEast"
	default:
		return "None"
	}
}

// Opposite returns the reverse diagonal.
func (d Direction) Opposite() Direction {
	return d ^ 3
}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	if !sq.IsValid() {
		return Empty
	}
	return 1 << (sq - 1)
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// Toggle flips the bit at the given square.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b ^ SquareBB(sq)
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount32(uint32(b))
}

// LSB returns the lowest numbered square, or NoSquare.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros32(uint32(b)) + 1)
}

// PopLSB removes and returns the lowest numbered square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Empty returns true if no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// Single returns true if exactly one bit is set.
func (b Bitboard) Single() bool {
	return b != 0 && b&(b-1) == 0
}

// Diagonal shifts. Each moves every set square one step along a diagonal;
// squares that would leave the board are dropped.

// NorthWest shifts toward row 0, column 0.
func (b Bitboard) NorthWest() Bitboard {
	return (b&EvenRows)>>4 | (b&OddRows&^LeftEdge)>>5
}

// NorthEast shifts toward row 0, column 7.
func (b Bitboard) NorthEast() Bitboard {
	return (b&EvenRows&^RightEdge)>>3 | (b&OddRows)>>4
}

// SouthWest shifts toward row 7, column 0.
func (b Bitboard) SouthWest() Bitboard {
	return (b&EvenRows)<<4 | (b&OddRows&^LeftEdge)<<3
}

// SouthEast shifts toward row 7, column 7.
func (b Bitboard) SouthEast() Bitboard {
	return (b&EvenRows&^RightEdge)<<5 | (b&OddRows)<<4
}

// Shift moves the bitboard one step in the given direction.
func (b Bitboard) Shift(d Direction) Bitboard {
	switch d {
	case NorthWest:
		return b.NorthWest()
	case NorthEast:
		return b.NorthEast()
	case SouthWest:
		return b.SouthWest()
	case SouthEast:
		return b.SouthEast()
	}
	return Empty
}

// Ray returns every square reachable from sq in direction d, stopping at
// (and excluding) the first square in blockers.
func Ray(sq Square, d Direction, blockers Bitboard) Bitboard {
	var ray Bitboard
	cur := SquareBB(sq).Shift(d)
	for cur != 0 && cur&blockers == 0 {
		ray |= cur
		cur = cur.Shift(d)
	}
	return ray
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := SquareAt(row, col)
			switch {
			case sq == NoSquare:
				sb.WriteString("  ")
			case b.IsSet(sq):
				sb.WriteString("1 ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
