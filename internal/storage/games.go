package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/hailam/checkers/internal/board"
)

var (
	// ErrGameNotFound is returned when no saved game matches an ID.
	ErrGameNotFound = errors.New("storage: game not found")
	// ErrAmbiguousID is returned when an ID prefix matches several games.
	ErrAmbiguousID = errors.New("storage: game ID prefix is ambiguous")
	// ErrChecksum is returned when a stored game fails its integrity check.
	ErrChecksum = errors.New("storage: game checksum mismatch")
)

// Result is the outcome recorded for a saved game.
type Result string

const (
	ResultUnfinished Result = "*"
	ResultBlackWins  Result = "black"
	ResultRedWins    Result = "red"
)

// ResultOf derives the result of the game on b.
func ResultOf(b *board.Board) Result {
	winner, ok := b.Winner()
	switch {
	case !ok:
		return ResultUnfinished
	case winner == board.Black:
		return ResultBlackWins
	default:
		return ResultRedWins
	}
}

// GameRecord is a saved game: its starting position, the turns played and
// the rule variant they were validated under.
type GameRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	StartFEN       string    `json:"start_fen"`
	Turns          []string  `json:"turns"`
	FlyingKings    bool      `json:"flying_kings"`
	MaximumCapture bool      `json:"maximum_capture"`
	Result         Result    `json:"result"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Checksum       uint64    `json:"checksum"`
}

// NewGameRecord captures the game on b under the given name.
func NewGameRecord(b *board.Board, name string) *GameRecord {
	turns := b.Turns()
	texts := make([]string, len(turns))
	for i, t := range turns {
		texts[i] = t.String()
	}
	r := b.Rules()
	return &GameRecord{
		Name:           name,
		StartFEN:       b.InitialState().FEN(),
		Turns:          texts,
		FlyingKings:    r.FlyingKings,
		MaximumCapture: r.MaximumCapture,
		Result:         ResultOf(b),
	}
}

// Rules returns the rule variant the game was played under.
func (g *GameRecord) Rules() board.Rules {
	return board.Rules{FlyingKings: g.FlyingKings, MaximumCapture: g.MaximumCapture}
}

// Replay rebuilds the board by replaying every stored turn.
func (g *GameRecord) Replay(opts ...board.Option) (*board.Board, error) {
	start, err := board.ParseFEN(g.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}
	opts = append([]board.Option{board.WithRules(g.Rules())}, opts...)
	b, err := board.Replay(start, g.Turns, opts...)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}
	return b, nil
}

// ShortID returns the first eight characters of the ID.
func (g *GameRecord) ShortID() string {
	if len(g.ID) > 8 {
		return g.ID[:8]
	}
	return g.ID
}

// computeChecksum hashes every field that defines the game.
func (g *GameRecord) computeChecksum() uint64 {
	d := xxhash.New()
	d.WriteString(g.ID)
	d.WriteString("\x00")
	d.WriteString(g.StartFEN)
	d.WriteString("\x00")
	d.WriteString(strings.Join(g.Turns, " "))
	d.WriteString("\x00")
	d.WriteString(strconv.FormatBool(g.FlyingKings))
	d.WriteString(strconv.FormatBool(g.MaximumCapture))
	d.WriteString(string(g.Result))
	return d.Sum64()
}

func gameKey(id string) []byte {
	return []byte(prefixGame + id)
}

// SaveGame stores g, assigning an ID and timestamps on first save.
func (s *Storage) SaveGame(g *GameRecord) error {
	now := time.Now()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	g.Checksum = g.computeChecksum()

	if err := s.putJSON(string(gameKey(g.ID)), g); err != nil {
		return err
	}
	s.log.Debug().Str("id", g.ID).Str("name", g.Name).Int("turns", len(g.Turns)).Msg("game saved")
	return nil
}

// LoadGame loads the game with the exact ID.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	g := &GameRecord{}
	found, err := s.getJSON(string(gameKey(id)), g)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if g.Checksum != g.computeChecksum() {
		return nil, fmt.Errorf("%w: %s", ErrChecksum, id)
	}
	return g, nil
}

// FindGame loads the single game whose ID starts with prefix.
func (s *Storage) FindGame(prefix string) (*GameRecord, error) {
	if prefix == "" {
		return nil, ErrGameNotFound
	}
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = gameKey(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), prefixGame))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, prefix)
	case 1:
		return s.LoadGame(ids[0])
	default:
		return nil, fmt.Errorf("%w: %s matches %d games", ErrAmbiguousID, prefix, len(ids))
	}
}

// ListGames returns every saved game, most recently updated first.
// Records failing their checksum are skipped and logged.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var games []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			g := &GameRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, g)
			})
			if err != nil {
				return err
			}
			if g.Checksum != g.computeChecksum() {
				s.log.Warn().Str("id", g.ID).Msg("skipping game with bad checksum")
				continue
			}
			games = append(games, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(games, func(a, b *GameRecord) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return games, nil
}

// DeleteGame removes the game with the exact ID.
func (s *Storage) DeleteGame(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := gameKey(id)
		if _, err := txn.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %s", ErrGameNotFound, id)
			}
			return err
		}
		return txn.Delete(key)
	})
	if err == nil {
		s.log.Debug().Str("id", id).Msg("game deleted")
	}
	return err
}
