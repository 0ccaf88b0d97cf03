// Package board implements a checkers rules engine using 32-bit bitboards.
package board

import (
	"fmt"
	"strconv"
)

// Square represents one of the 32 playable squares (1-32) in standard
// checkers numbering: row-major across the dark squares, square 1 on row 0.
type Square uint8

// NoSquare marks an absent square.
const NoSquare Square = 0

// Square bounds.
const (
	FirstSquare Square = 1
	LastSquare  Square = 32
)

// Row returns the row of the square (0-7, row 0 holds squares 1-4).
func (sq Square) Row() int {
	return int(sq-1) >> 2
}

// Col returns the column of the square (0-7).
func (sq Square) Col() int {
	pos := int(sq-1) & 3
	if sq.Row()&1 == 0 {
		return 2*pos + 1
	}
	return 2 * pos
}

// Bit returns the bit index of the square.
func (sq Square) Bit() int {
	return int(sq) - 1
}

// IsValid returns true if the square is a playable square (1-32).
func (sq Square) IsValid() bool {
	return sq >= FirstSquare && sq <= LastSquare
}

// String returns the square number.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return strconv.Itoa(int(sq))
}

// SquareAt returns the square at the given row and column, or NoSquare if
// the coordinates are off the board or name a light square.
func SquareAt(row, col int) Square {
	if row < 0 || row > 7 || col < 0 || col > 7 || (row+col)&1 == 0 {
		return NoSquare
	}
	return Square(row*4 + col/2 + 1)
}

// ParseSquare parses a decimal square number (e.g., "18").
func ParseSquare(s string) (Square, error) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	if n < int(FirstSquare) || n > int(LastSquare) {
		return NoSquare, fmt.Errorf("square out of range: %d", n)
	}
	return Square(n), nil
}

// Neighbor returns the adjacent square in direction d, or NoSquare.
func (sq Square) Neighbor(d Direction) Square {
	return SquareBB(sq).Shift(d).LSB()
}
