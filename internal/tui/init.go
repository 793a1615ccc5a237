package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/timeblock/internal/config"
	"github.com/javiermolinar/timeblock/internal/db"
	"github.com/javiermolinar/timeblock/internal/item"
)

// InitState tracks which startup files are missing.
type InitState struct {
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// FirstRun reports whether neither a config nor a database existed.
func (s InitState) FirstRun() bool {
	return s.ConfigMissing && s.DBMissing
}

// DetectInitState checks for missing config or database files.
func DetectInitState(cfg *config.Config, configPath string) (InitState, error) {
	state := InitState{
		ConfigPath: configPath,
		DBPath:     cfg.Storage.DBPath,
	}

	configMissing, err := pathMissing(state.ConfigPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	dbMissing, err := pathMissing(state.DBPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}

	state.ConfigMissing = configMissing
	state.DBMissing = dbMissing
	return state, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

// OpenStore opens the SQLite store at dbPath, creating its directory.
func OpenStore(dbPath string) (item.Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return store, nil
}

// Prepare writes the default config when none exists and opens the store.
func Prepare(cfg *config.Config, state InitState) (item.Store, error) {
	if state.ConfigMissing && state.ConfigPath != "" {
		if err := cfg.SaveTo(state.ConfigPath); err != nil {
			return nil, fmt.Errorf("saving config: %w", err)
		}
	}
	return OpenStore(state.DBPath)
}
