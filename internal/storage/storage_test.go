package storage

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/hailam/checkers/internal/board"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func playedBoard(t *testing.T, turns ...string) *board.Board {
	t.Helper()
	b, err := board.Replay(board.NewState(), turns)
	require.NoError(t, err)
	return b
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.RenderSize != 512 {
			t.Errorf("Expected render size 512, got %d", prefs.RenderSize)
		}
		if prefs.FlyingKings || prefs.MaximumCapture {
			t.Errorf("Expected American rules by default")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.AverageTurns() != 0 {
			t.Errorf("Expected 0 average turns")
		}
	})
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	require.NoError(t, err)
	require.True(t, first)

	require.NoError(t, s.MarkFirstLaunchComplete())
	first, err = s.IsFirstLaunch()
	require.NoError(t, err)
	require.False(t, first)
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	require.NoError(t, err)
	require.Equal(t, 512, prefs.RenderSize)

	prefs.FlyingKings = true
	prefs.RenderSize = 256
	prefs.LastGameID = "abc"
	require.NoError(t, s.SavePreferences(prefs))

	loaded, err := s.LoadPreferences()
	require.NoError(t, err)
	require.True(t, loaded.FlyingKings)
	require.Equal(t, 256, loaded.RenderSize)
	require.Equal(t, "abc", loaded.LastGameID)
}

func TestSaveAndLoadGame(t *testing.T) {
	s := openTest(t)
	b := playedBoard(t, "10-14", "23-18", "14x23")

	rec := NewGameRecord(b, "opening")
	require.NoError(t, s.SaveGame(rec))
	require.NotEmpty(t, rec.ID)
	require.False(t, rec.CreatedAt.IsZero())
	require.NotZero(t, rec.Checksum)

	loaded, err := s.LoadGame(rec.ID)
	require.NoError(t, err)
	require.Equal(t, "opening", loaded.Name)
	require.Equal(t, board.StartFEN, loaded.StartFEN)
	require.Equal(t, []string{"10-14", "23-18", "14x23"}, loaded.Turns)
	require.Equal(t, ResultUnfinished, loaded.Result)

	replayed, err := loaded.Replay()
	require.NoError(t, err)
	require.Equal(t, b.CurrentState(), replayed.CurrentState())

	found, err := s.FindGame(rec.ShortID())
	require.NoError(t, err)
	require.Equal(t, rec.ID, found.ID)
}

func TestLoadMissingGame(t *testing.T) {
	s := openTest(t)

	_, err := s.LoadGame("missing")
	require.ErrorIs(t, err, ErrGameNotFound)
	_, err = s.FindGame("missing")
	require.ErrorIs(t, err, ErrGameNotFound)
	_, err = s.FindGame("")
	require.ErrorIs(t, err, ErrGameNotFound)
	require.ErrorIs(t, s.DeleteGame("missing"), ErrGameNotFound)
}

func TestFindGameAmbiguous(t *testing.T) {
	s := openTest(t)
	for _, id := range []string{"aa01", "aa02"} {
		require.NoError(t, s.SaveGame(&GameRecord{ID: id, StartFEN: board.StartFEN}))
	}

	_, err := s.FindGame("aa")
	require.ErrorIs(t, err, ErrAmbiguousID)

	g, err := s.FindGame("aa02")
	require.NoError(t, err)
	require.Equal(t, "aa02", g.ID)
}

func TestChecksumDetectsTampering(t *testing.T) {
	s := openTest(t)
	rec := NewGameRecord(playedBoard(t, "11-15"), "tampered")
	require.NoError(t, s.SaveGame(rec))

	rec.Turns = []string{"9-13"}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	}))

	_, err = s.LoadGame(rec.ID)
	require.ErrorIs(t, err, ErrChecksum)

	games, err := s.ListGames()
	require.NoError(t, err)
	require.Empty(t, games)
}

func TestListGamesNewestFirst(t *testing.T) {
	s := openTest(t)

	first := NewGameRecord(playedBoard(t, "11-15"), "first")
	require.NoError(t, s.SaveGame(first))
	time.Sleep(2 * time.Millisecond)
	second := NewGameRecord(playedBoard(t, "9-13"), "second")
	require.NoError(t, s.SaveGame(second))

	games, err := s.ListGames()
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, "second", games[0].Name)

	// Saving again moves the game to the front.
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, s.SaveGame(first))
	games, err = s.ListGames()
	require.NoError(t, err)
	require.Equal(t, "first", games[0].Name)
	require.Equal(t, first.CreatedAt.UnixNano(), games[0].CreatedAt.UnixNano())

	require.NoError(t, s.DeleteGame(first.ID))
	games, err = s.ListGames()
	require.NoError(t, err)
	require.Len(t, games, 1)
}

func TestGameRecordResultAndRules(t *testing.T) {
	b := board.NewBoard(
		board.WithStart(board.MustParseFEN("B:W5,6,10:B1")),
		board.WithRules(board.InternationalRules),
	)
	rec := NewGameRecord(b, "lost")
	require.Equal(t, ResultRedWins, rec.Result)
	require.Equal(t, board.InternationalRules, rec.Rules())
	require.Empty(t, rec.Turns)
}

func TestRecordResult(t *testing.T) {
	s := openTest(t)

	require.NoError(t, s.RecordResult(ResultBlackWins, 40))
	require.NoError(t, s.RecordResult(ResultRedWins, 20))
	require.NoError(t, s.RecordResult(ResultUnfinished, 3))

	stats, err := s.LoadStats()
	require.NoError(t, err)
	require.Equal(t, 3, stats.GamesPlayed)
	require.Equal(t, 1, stats.BlackWins)
	require.Equal(t, 1, stats.RedWins)
	require.Equal(t, 1, stats.Unfinished)
	require.Equal(t, 40, stats.LongestGame)
	require.InDelta(t, 21.0, stats.AverageTurns(), 0.001)
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	rec := &GameRecord{StartFEN: board.StartFEN}
	require.NoError(t, s.SaveGame(rec))
	require.NoError(t, s.Close())

	_, err = os.Stat(dir + "/db")
	require.NoError(t, err)

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	loaded, err := s.LoadGame(rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, loaded.ID)
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	// Verify directory exists
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}
}
