package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartingPositionTurns(t *testing.T) {
	turns := NewState().LegalTurns()
	require.Equal(t, []string{"9-13", "9-14", "10-14", "10-15", "11-15", "11-16", "12-16"}, turns.Strings())

	red := NewState().WithSideToMove(Red).LegalTurns()
	require.Equal(t, []string{"21-17", "22-17", "22-18", "23-18", "23-19", "24-19", "24-20"}, red.Strings())
}

func TestGenerateTurns(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		rules Rules
		want  []string
	}{
		{
			name: "single jump excludes steps",
			fen:  "B:W18:B14,9",
			want: []string{"14x23"},
		},
		{
			name: "double jump ends on promotion row",
			fen:  "B:W18,27:B14",
			want: []string{"14x23x32"},
		},
		{
			name: "branching chains are all legal",
			fen:  "B:W18,26,27:B14",
			want: []string{"14x23x30", "14x23x32"},
		},
		{
			name: "promotion ends the chain",
			fen:  "B:W26,27:B22",
			want: []string{"22x31"},
		},
		{
			name: "red men move north",
			fen:  "W:W23:B1",
			want: []string{"23-18", "23-19"},
		},
		{
			name: "red captures north",
			fen:  "W:W23:B18,1",
			want: []string{"23x14"},
		},
		{
			name: "short king steps",
			fen:  "B:W32:BK18",
			want: []string{"18-14", "18-15", "18-22", "18-23"},
		},
		{
			name: "king captures backward",
			fen:  "B:W14:BK18",
			want: []string{"18x9"},
		},
		{
			name:  "flying king slides",
			fen:   "B:W32:BK18",
			rules: Rules{FlyingKings: true},
			want: []string{
				"18-14", "18-9", "18-5",
				"18-15", "18-11", "18-8", "18-4",
				"18-22", "18-25", "18-29",
				"18-23", "18-27",
			},
		},
		{
			name: "short king cannot reach a distant piece",
			fen:  "B:W15:BK1",
			want: []string{"1-5", "1-6"},
		},
		{
			name:  "flying king captures at distance",
			fen:   "B:W15:BK1",
			rules: Rules{FlyingKings: true},
			want:  []string{"1x19", "1x24", "1x28"},
		},
		{
			name: "any maximal chain by default",
			fen:  "B:W17,18,27:B14",
			want: []string{"14x21", "14x23x32"},
		},
		{
			name:  "maximum capture keeps the longest chain",
			fen:   "B:W17,18,27:B14",
			rules: Rules{MaximumCapture: true},
			want:  []string{"14x23x32"},
		},
		{
			name: "no pieces no turns",
			fen:  "B:W18",
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseFEN(tc.fen)
			require.NoError(t, err)
			got := GenerateTurns(s, tc.rules)
			require.Equal(t, tc.want, got.Strings())
			require.Equal(t, len(tc.want) > 0 && got[0].IsCapture(), HasCapture(s, tc.rules))
		})
	}
}

func TestCaptureChainsAreMaximal(t *testing.T) {
	for _, fen := range []string{
		"B:W18,27:B14",
		"B:W18,26,27:B14",
		"B:W17,18,27:B14",
		"B:W10,11,18,19:BK14",
	} {
		s := MustParseFEN(fen)
		legal := s.LegalTurns()
		for _, turn := range legal {
			require.True(t, turn.IsCapture(), fen)
			for _, other := range legal {
				require.False(t, other.HasPrefix(turn), "%s extends %s", other, turn)
			}
			assertNoFurtherCapture(t, s, turn)
		}
	}
}

// assertNoFurtherCapture checks that the moved piece has no capture left
// once the turn is complete, unless it was just crowned.
func assertNoFurtherCapture(t *testing.T, s State, turn Turn) {
	t.Helper()
	if !turn.IsCapture() || Promotes(s, turn) {
		return
	}
	after := Apply(s, turn).WithSideToMove(s.SideToMove())
	for _, next := range GenerateTurns(after, AmericanRules) {
		if next.IsCapture() {
			require.NotEqual(t, turn.To(), next.From(), "%s leaves capture %s", turn, next)
		}
	}
}
