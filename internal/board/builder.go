package board

import (
	"errors"
	"fmt"
)

// ErrDuplicatePlacement is returned by Build when a square was assigned
// more than once.
var ErrDuplicatePlacement = errors.New("board: square assigned more than once")

// Builder assembles an arbitrary State piece by piece.
type Builder struct {
	state State
	err   error
}

// NewBuilder creates a builder for an empty board with black to move.
func NewBuilder() *Builder {
	return &Builder{state: EmptyState()}
}

// SideToMove sets the player to move.
func (b *Builder) SideToMove(c Color) *Builder {
	b.state.side = c
	return b
}

// Man places a man of the given color.
func (b *Builder) Man(c Color, sq Square) *Builder {
	return b.Place(NewPiece(Man, c), sq)
}

// King places a king of the given color.
func (b *Builder) King(c Color, sq Square) *Builder {
	return b.Place(NewPiece(King, c), sq)
}

// Place puts p on sq. The first error encountered is reported by Build.
func (b *Builder) Place(p Piece, sq Square) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case !sq.IsValid():
		b.err = fmt.Errorf("board: invalid square %d", sq)
	case p == NoPiece:
		b.err = errors.New("board: cannot place an empty piece")
	case !b.state.IsEmpty(sq):
		b.err = fmt.Errorf("%w: %s", ErrDuplicatePlacement, sq)
	default:
		b.state = b.state.with(p, sq)
	}
	return b
}

// Build returns the assembled state after validating it.
func (b *Builder) Build() (State, error) {
	if b.err != nil {
		return State{}, b.err
	}
	if err := b.state.Validate(); err != nil {
		return State{}, err
	}
	return b.state, nil
}
