// Package storage persists saved games, preferences and statistics in a
// BadgerDB database under the platform data directory.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "checkers"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/checkers/
// - Linux: ~/.local/share/checkers/
// - Windows: %APPDATA%/checkers/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Check XDG_DATA_HOME first
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetDatabaseDir returns the directory holding the BadgerDB files below
// dataDir, or below GetDataDir when dataDir is empty.
func GetDatabaseDir(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = GetDataDir(); err != nil {
			return "", err
		}
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
