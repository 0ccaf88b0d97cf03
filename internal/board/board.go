package board

import (
	"fmt"
	"iter"

	"github.com/rs/zerolog"
)

// Status is the derived game status of the current state.
type Status uint8

const (
	// Ongoing means the player to move has at least one legal turn.
	Ongoing Status = iota
	// Complete means the player to move has no legal turn left.
	Complete
)

// String returns the status name.
func (st Status) String() string {
	if st == Complete {
		return "complete"
	}
	return "ongoing"
}

// Board composes the codec, generator, validator and history. It is not
// safe for concurrent mutation; callers sharing a Board must serialise
// PushTurn and PopTurn themselves. States it returns may be shared freely.
type Board struct {
	rules   Rules
	history *History
	turns   []Turn
	log     zerolog.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithRules selects the rule variant.
func WithRules(r Rules) Option {
	return func(b *Board) { b.rules = r }
}

// WithStart replaces the classical starting position.
func WithStart(s State) Option {
	return func(b *Board) { b.history = NewHistory(s) }
}

// WithLogger attaches a logger for turn events.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Board) { b.log = l }
}

// NewBoard creates a board at the classical starting position.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		history: NewHistory(NewState()),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Rules returns the rule variant in force.
func (b *Board) Rules() Rules {
	return b.rules
}

// PushTurn parses text, validates it against the current state and, on
// success, commits the resulting state. On failure nothing changes and the
// error is a *NotationError or *IllegalMoveError.
func (b *Board) PushTurn(text string) (State, error) {
	t, err := ParseTurn(text)
	if err != nil {
		b.log.Debug().Str("turn", text).Err(err).Msg("rejected notation")
		return b.CurrentState(), err
	}
	return b.PushParsed(t)
}

// PushParsed validates and commits an already parsed turn.
func (b *Board) PushParsed(t Turn) (State, error) {
	cur := b.CurrentState()
	if err := Validate(cur, t, b.rules); err != nil {
		b.log.Debug().Stringer("turn", t).Stringer("side", cur.SideToMove()).Err(err).Msg("rejected turn")
		return cur, err
	}
	next := Apply(cur, t)
	b.history.Push(next)
	b.turns = append(b.turns, t)
	b.log.Debug().
		Stringer("turn", t).
		Stringer("side", cur.SideToMove()).
		Int("ply", len(b.turns)).
		Bool("promoted", Promotes(cur, t)).
		Int("captured", t.Captured(cur).PopCount()).
		Msg("turn committed")
	return next, nil
}

// PopTurn discards the current state and returns it; the previous state
// becomes current. It fails with ErrEmptyHistory at the initial state.
func (b *Board) PopTurn() (State, error) {
	popped, err := b.history.Pop()
	if err != nil {
		return State{}, err
	}
	undone := b.turns[len(b.turns)-1]
	b.turns = b.turns[:len(b.turns)-1]
	b.log.Debug().Stringer("turn", undone).Int("ply", len(b.turns)).Msg("turn undone")
	return popped, nil
}

// CurrentState returns the most recent state.
func (b *Board) CurrentState() State {
	return b.history.Current()
}

// InitialState returns the starting state.
func (b *Board) InitialState() State {
	return b.history.Initial()
}

// History yields every state from initial to current.
func (b *Board) History() iter.Seq[State] {
	return b.history.States()
}

// Len returns the history length, including the initial state.
func (b *Board) Len() int {
	return b.history.Len()
}

// Turns returns a copy of the turns played so far, in order.
func (b *Board) Turns() []Turn {
	return append([]Turn(nil), b.turns...)
}

// LegalTurns returns the legal turns for the current state.
func (b *Board) LegalTurns() TurnList {
	return GenerateTurns(b.CurrentState(), b.rules)
}

// Status reports whether the player to move can still play.
func (b *Board) Status() Status {
	if len(b.LegalTurns()) == 0 {
		return Complete
	}
	return Ongoing
}

// Winner returns the winning color once the game is complete.
func (b *Board) Winner() (Color, bool) {
	if b.Status() != Complete {
		return NoColor, false
	}
	return b.CurrentState().SideToMove().Other(), true
}

// Repetitions counts how often the current state occurred before.
func (b *Board) Repetitions() int {
	return b.history.Repetitions(b.CurrentState())
}

// Replay builds a board from start by pushing every turn in order.
func Replay(start State, turns []string, opts ...Option) (*Board, error) {
	b := NewBoard(append([]Option{WithStart(start)}, opts...)...)
	for i, text := range turns {
		if _, err := b.PushTurn(text); err != nil {
			return nil, fmt.Errorf("replay turn %d: %w", i+1, err)
		}
	}
	return b, nil
}
