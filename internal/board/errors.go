package board

import (
	"errors"
	"fmt"
)

// ErrEmptyHistory is returned when popping a history that only holds the
// initial state.
var ErrEmptyHistory = errors.New("board: history holds only the initial state")

// NotationError reports malformed turn text. It is always detected before
// any legality check.
type NotationError struct {
	Input  string
	Reason string
}

func (e *NotationError) Error() string {
	return fmt.Sprintf("notation %q: %s", e.Input, e.Reason)
}

func notationErr(input, format string, args ...any) *NotationError {
	return &NotationError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// Reason explains why a syntactically valid turn was rejected.
type Reason uint8

const (
	ReasonNotLegal Reason = iota
	ReasonNoPiece
	ReasonWrongOwner
	ReasonDestinationOccupied
	ReasonMandatoryCapture
	ReasonIncompleteChain
	ReasonNotDiagonal
	ReasonWrongDirection
	ReasonNothingToCapture
	ReasonMarkerMismatch
	ReasonBrokenChain
	ReasonNotMaximum
)

var reasonText = [...]string{
	ReasonNotLegal:            "not a legal turn",
	ReasonNoPiece:             "no piece on the origin square",
	ReasonWrongOwner:          "piece belongs to the opponent",
	ReasonDestinationOccupied: "destination or path is occupied",
	ReasonMandatoryCapture:    "a capture is available and must be taken",
	ReasonIncompleteChain:     "capture chain stops while a further capture is available",
	ReasonNotDiagonal:         "squares are not diagonally adjacent",
	ReasonWrongDirection:      "men may only move forward",
	ReasonNothingToCapture:    "no opposing piece to jump",
	ReasonMarkerMismatch:      "move marker does not match the move",
	ReasonBrokenChain:         "jump does not start where the previous one ended",
	ReasonNotMaximum:          "a longer capture chain is available",
}

// String returns the reason text.
func (r Reason) String() string {
	if int(r) < len(reasonText) {
		return reasonText[r]
	}
	return "unknown"
}

// IllegalMoveError reports a turn that matches no legal turn of the state.
type IllegalMoveError struct {
	Turn   Turn
	Reason Reason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal turn %s: %s", e.Turn, e.Reason)
}

func illegal(t Turn, r Reason) *IllegalMoveError {
	return &IllegalMoveError{Turn: t, Reason: r}
}

// IsNotation reports whether err is (or wraps) a *NotationError.
func IsNotation(err error) bool {
	var ne *NotationError
	return errors.As(err, &ne)
}

// IsIllegal reports whether err is (or wraps) an *IllegalMoveError.
func IsIllegal(err error) bool {
	var ie *IllegalMoveError
	return errors.As(err, &ie)
}
