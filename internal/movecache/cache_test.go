package movecache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hailam/checkers/internal/board"
)

func newCache(t *testing.T, rules board.Rules) *Cache {
	t.Helper()
	c, err := New(1024, rules)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewRejectsEmptyCache(t *testing.T) {
	_, err := New(0, board.AmericanRules)
	require.Error(t, err)
}

func TestLegalMatchesGenerator(t *testing.T) {
	c := newCache(t, board.AmericanRules)
	for _, fen := range []string{
		board.StartFEN,
		"B:W18,26,27:B14",
		"B:W17,18,27:B14",
		"W:W23:B18,1",
	} {
		s := board.MustParseFEN(fen)
		want := board.GenerateTurns(s, board.AmericanRules)
		require.Equal(t, want.Strings(), c.Legal(s).Strings(), fen)
		c.Wait()
		require.Equal(t, want.Strings(), c.Legal(s).Strings(), fen)
	}
}

func TestLegalCountsHits(t *testing.T) {
	c := newCache(t, board.AmericanRules)
	s := board.NewState()

	c.Legal(s)
	hits, misses := c.Metrics()
	require.Zero(t, hits)
	require.Equal(t, uint64(1), misses)

	c.Wait()
	c.Legal(s)
	hits, _ = c.Metrics()
	require.Equal(t, uint64(1), hits)
	require.InDelta(t, 50.0, c.HitRate(), 0.001)

	c.Clear()
	hits, misses = c.Metrics()
	require.Zero(t, hits+misses)
	require.Zero(t, c.HitRate())
}

func TestCacheRespectsRules(t *testing.T) {
	s := board.MustParseFEN("B:W17,18,27:B14")

	american := newCache(t, board.AmericanRules)
	require.Equal(t, []string{"14x21", "14x23x32"}, american.Legal(s).Strings())

	majority := newCache(t, board.Rules{MaximumCapture: true})
	require.Equal(t, []string{"14x23x32"}, majority.Legal(s).Strings())
	require.True(t, majority.Rules().MaximumCapture)
}

func TestPerftMatchesUncached(t *testing.T) {
	c := newCache(t, board.AmericanRules)
	s := board.NewState()
	for depth := 0; depth <= 5; depth++ {
		require.Equal(t, board.Perft(s, depth, board.AmericanRules), c.Perft(s, depth), "depth %d", depth)
	}
	c.Wait()
	require.Equal(t, int64(7361), c.Perft(s, 5))
}

func TestCountKeyVariesWithDepth(t *testing.T) {
	h := board.NewState().Hash()
	require.NotEqual(t, countKey(h, 3), countKey(h, 4))
}
