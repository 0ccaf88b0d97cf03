package board

import "testing"

// TestPerftStartingPosition checks leaf counts from the starting position
// against the published American checkers values.
func TestPerftStartingPosition(t *testing.T) {
	s := NewState()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 7},
		{2, 49},
		{3, 302},
		{4, 1469},
		{5, 7361},
		{6, 36768},
		// Depth 7 takes longer, enable for thorough testing:
		// {7, 179740},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(s, tc.depth, AmericanRules)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftSingleKing counts the moves of a lone king, which has no
// capture to make and therefore just steps or slides.
func TestPerftSingleKing(t *testing.T) {
	s, err := ParseFEN("B:W32:BK18")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if got := Perft(s, 1, AmericanRules); got != 4 {
		t.Errorf("short king perft(1) = %d, want 4", got)
	}
	if got := Perft(s, 1, Rules{FlyingKings: true}); got != 12 {
		t.Errorf("flying king perft(1) = %d, want 12", got)
	}
}

// TestPerftRulesAgreeWithoutKings checks that rule variants only differ
// once kings or competing chains appear.
func TestPerftRulesAgreeWithoutKings(t *testing.T) {
	s := NewState()
	for depth := 1; depth <= 4; depth++ {
		american := Perft(s, depth, AmericanRules)
		flying := Perft(s, depth, Rules{FlyingKings: true})
		if american != flying {
			t.Errorf("depth %d: american %d, flying %d", depth, american, flying)
		}
	}
}

func BenchmarkPerft(b *testing.B) {
	s := NewState()
	for i := 0; i < b.N; i++ {
		Perft(s, 5, AmericanRules)
	}
}
