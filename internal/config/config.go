// Package config loads runtime settings from the environment and optional
// .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hailam/checkers/internal/board"
	"github.com/hailam/checkers/internal/movecache"
)

// Environment variable names.
const (
	EnvDataDir      = "CHECKERS_DATA_DIR"
	EnvLogLevel     = "CHECKERS_LOG_LEVEL"
	EnvFlyingKings  = "CHECKERS_FLYING_KINGS"
	EnvMaxCapture   = "CHECKERS_MAX_CAPTURE"
	EnvCacheEntries = "CHECKERS_CACHE_ENTRIES"
)

// Config holds the settings shared by every command.
type Config struct {
	// DataDir overrides the platform data directory when set.
	DataDir        string
	LogLevel       string
	FlyingKings    bool
	MaximumCapture bool
	CacheEntries   int64
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:     "info",
		CacheEntries: movecache.DefaultEntries,
	}
}

// Load reads the given .env files (".env" when none are named) and then
// the process environment. Missing files are ignored; values already set
// in the environment win over file values.
func Load(paths ...string) (Config, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	if v := getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	var err error
	if cfg.FlyingKings, err = parseBool(getenv, EnvFlyingKings); err != nil {
		return Config{}, err
	}
	if cfg.MaximumCapture, err = parseBool(getenv, EnvMaxCapture); err != nil {
		return Config{}, err
	}
	if v := getenv(EnvCacheEntries); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: %s must be a positive integer, got %q", EnvCacheEntries, v)
		}
		cfg.CacheEntries = n
	}
	return cfg, nil
}

func parseBool(getenv func(string) string, key string) (bool, error) {
	v := getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: invalid boolean %q", key, v)
	}
	return b, nil
}

// Rules returns the rule variant selected by the configuration.
func (c Config) Rules() board.Rules {
	return board.Rules{FlyingKings: c.FlyingKings, MaximumCapture: c.MaximumCapture}
}
