package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	catalogFileName = "catalog.sqlite"
	uiStateFileName = "ui_state.json"
)

var ErrNotFound = errors.New("not found")

// ValidationError reports a listing field that cannot be stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid listing %s: %s", e.Field, e.Reason)
}

// Store is a studhub data directory: the listing catalog plus small UI state files.
type Store struct {
	Dir string
}

// DataDir returns the default data directory.
func DataDir() (string, error) {
	// Test/advanced override (keeps unit tests away from the real config dir).
	if v := strings.TrimSpace(os.Getenv("STUDHUB_CONFIG_DIR")); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("resolve data dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "studhub"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) catalogPath() string {
	return filepath.Join(s.Dir, catalogFileName)
}
