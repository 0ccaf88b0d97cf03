package board

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestBoardInitialPosition(t *testing.T) {
	b := NewBoard()
	s := b.CurrentState()

	require.Equal(t, InitialBlackMen, s.BlackMen())
	require.Equal(t, InitialRedMen, s.RedMen())
	require.Equal(t, Black, s.SideToMove())
	require.Equal(t, 1, b.Len())
	require.Equal(t, Ongoing, b.Status())
	require.Len(t, b.LegalTurns(), 7)
}

func TestBoardIgnoresInvalidSideToMove(t *testing.T) {
	s := NewState().WithSideToMove(NoColor)
	require.Equal(t, Black, s.SideToMove())
	require.Equal(t, Red, s.WithSideToMove(Red).SideToMove())

	b := NewBoard(WithStart(s))
	_, err := b.PushTurn("11-15")
	require.NoError(t, err)
	require.Equal(t, Red, b.CurrentState().SideToMove())
}

func TestBoardMandatoryCapture(t *testing.T) {
	b := NewBoard()
	for _, text := range []string{"10-14", "23-18"} {
		_, err := b.PushTurn(text)
		require.NoError(t, err)
	}

	before := b.CurrentState()
	_, err := b.PushTurn("9-13")
	var ie *IllegalMoveError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, ReasonMandatoryCapture, ie.Reason)
	require.Equal(t, before, b.CurrentState())
	require.Equal(t, 3, b.Len())

	s, err := b.PushTurn("14x23")
	require.NoError(t, err)
	require.False(t, s.RedMen().IsSet(18))
	require.True(t, s.BlackMen().IsSet(23))
	require.False(t, s.BlackMen().IsSet(14))
	require.Equal(t, 11, s.Pieces(Red).PopCount())
	require.Equal(t, 12, s.Pieces(Black).PopCount())

	require.Equal(t, []string{"26x19", "27x18"}, b.LegalTurns().Strings())
}

func TestBoardRejectsWithoutChange(t *testing.T) {
	b := NewBoard()
	for _, text := range []string{"99-50", "11-15x", "23-18", "18-22", "1-6", "9x18"} {
		_, err := b.PushTurn(text)
		require.Error(t, err, text)
		require.True(t, IsNotation(err) || IsIllegal(err), text)
		require.Equal(t, NewState(), b.CurrentState())
		require.Equal(t, 1, b.Len())
	}

	_, err := b.PushTurn("99-50")
	require.True(t, IsNotation(err))
	require.False(t, IsIllegal(err))
}

func TestBoardUndo(t *testing.T) {
	b := NewBoard()
	_, err := b.PopTurn()
	require.ErrorIs(t, err, ErrEmptyHistory)

	after, err := b.PushTurn("11-15")
	require.NoError(t, err)

	popped, err := b.PopTurn()
	require.NoError(t, err)
	require.Equal(t, after, popped)
	require.Equal(t, NewState(), b.CurrentState())
	require.Empty(t, b.Turns())

	_, err = b.PopTurn()
	require.ErrorIs(t, err, ErrEmptyHistory)
}

func TestBoardHistoryMonotonic(t *testing.T) {
	b := NewBoard()
	texts := []string{"10-14", "23-18", "14x23", "27x18"}
	for i, text := range texts {
		_, err := b.PushTurn(text)
		require.NoError(t, err)
		require.Equal(t, i+2, b.Len())
	}

	var states []State
	for s := range b.History() {
		states = append(states, s)
	}
	require.Len(t, states, len(texts)+1)
	require.Equal(t, b.InitialState(), states[0])
	require.Equal(t, b.CurrentState(), states[len(states)-1])

	for i, turn := range b.Turns() {
		require.NoError(t, Validate(states[i], turn, b.Rules()))
		require.Equal(t, states[i+1], Apply(states[i], turn))
	}
	require.Equal(t, texts, TurnList(b.Turns()).Strings())
}

func TestBoardStatusAndWinner(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		status Status
		winner Color
	}{
		{"start", StartFEN, Ongoing, NoColor},
		{"no pieces left", "W:B1", Complete, Black},
		{"blocked", "B:W5,6,10:B1", Complete, Red},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(WithStart(MustParseFEN(tc.fen)))
			require.Equal(t, tc.status, b.Status())
			winner, ok := b.Winner()
			require.Equal(t, tc.status == Complete, ok)
			require.Equal(t, tc.winner, winner)
		})
	}
}

func TestBoardRepetitions(t *testing.T) {
	b := NewBoard(WithStart(MustParseFEN("B:WK32:BK1")))
	for _, text := range []string{"1-5", "32-28", "5-1", "28-32"} {
		_, err := b.PushTurn(text)
		require.NoError(t, err)
	}
	require.Equal(t, 1, b.Repetitions())
}

func TestReplay(t *testing.T) {
	b, err := Replay(NewState(), []string{"10-14", "23-18", "14x23"})
	require.NoError(t, err)
	require.Equal(t, 4, b.Len())
	require.Equal(t, Red, b.CurrentState().SideToMove())

	_, err = Replay(NewState(), []string{"10-14", "23-18", "9-13"})
	require.Error(t, err)
	require.True(t, IsIllegal(err))
	require.Contains(t, err.Error(), "turn 3")
}

func TestBoardLogsCommittedTurns(t *testing.T) {
	var buf bytes.Buffer
	b := NewBoard(WithLogger(zerolog.New(&buf)))
	_, err := b.PushTurn("11-15")
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"turn":"11-15"`)
	require.Contains(t, buf.String(), "turn committed")
}

// TestRandomPlayoutInvariants plays seeded random games and checks the
// structural invariants after every turn.
func TestRandomPlayoutInvariants(t *testing.T) {
	for _, rules := range []Rules{AmericanRules, InternationalRules} {
		rng := rand.New(rand.NewPCG(1, 2))
		for game := 0; game < 20; game++ {
			b := NewBoard(WithRules(rules))
			prev := b.CurrentState()
			for ply := 0; ply < 200 && b.Status() == Ongoing; ply++ {
				legal := b.LegalTurns()
				turn := legal[rng.IntN(len(legal))]
				if HasCapture(prev, rules) {
					require.True(t, turn.IsCapture())
				}

				next, err := b.PushParsed(turn)
				require.NoError(t, err)
				require.NoError(t, next.Validate())
				require.Equal(t, prev.SideToMove().Other(), next.SideToMove())

				before := prev.Pieces(Black).PopCount() + prev.Pieces(Red).PopCount()
				after := next.Pieces(Black).PopCount() + next.Pieces(Red).PopCount()
				require.Equal(t, before-turn.Captured(prev).PopCount(), after)
				if turn.IsCapture() {
					require.Equal(t, len(turn), turn.Captured(prev).PopCount())
				}
				require.LessOrEqual(t, prev.Kings(prev.SideToMove()).PopCount(), next.Kings(prev.SideToMove()).PopCount())
				prev = next
			}
		}
	}
}
