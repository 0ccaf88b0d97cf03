package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	prefixGame     = "game/"
)

// Preferences stores user settings.
type Preferences struct {
	FlyingKings    bool      `json:"flying_kings"`
	MaximumCapture bool      `json:"maximum_capture"`
	RenderSize     int       `json:"render_size"`
	LastGameID     string    `json:"last_game_id"`
	LastPlayed     time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		RenderSize: 512,
		LastPlayed: time.Now(),
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log zerolog.Logger
}

// Option configures Open.
type Option func(*config)

type config struct {
	log zerolog.Logger
}

// WithLogger routes database and storage messages to l.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}

// NewStorage opens the database in the platform data directory.
func NewStorage(opts ...Option) (*Storage, error) {
	dbDir, err := GetDatabaseDir("")
	if err != nil {
		return nil, err
	}
	return open(badger.DefaultOptions(dbDir), opts)
}

// Open opens the database below dataDir, creating it if needed.
func Open(dataDir string, opts ...Option) (*Storage, error) {
	dbDir, err := GetDatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}
	return open(badger.DefaultOptions(dbDir), opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory(opts ...Option) (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), opts)
}

func open(bopts badger.Options, opts []Option) (*Storage, error) {
	cfg := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	bopts.Logger = badgerLogger{cfg.log}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug().Str("dir", bopts.Dir).Bool("memory", bopts.InMemory).Msg("storage opened")
	return &Storage{db: db, log: cfg.log}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	var firstLaunch bool = true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			firstLaunch = true
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	_, err := s.getJSON(keyPreferences, prefs)
	return prefs, err
}

func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON decodes the value under key into v. It reports false, leaving v
// untouched, when the key does not exist.
func (s *Storage) getJSON(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// badgerLogger adapts zerolog to badger's logger interface. Badger's info
// chatter is demoted to debug.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error().Str("component", "badger").Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn().Str("component", "badger").Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug().Str("component", "badger").Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Trace().Str("component", "badger").Msgf(format, args...)
}
