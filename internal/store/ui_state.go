package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// UIState holds the few flags the app remembers between launches: who is
// logged in, which page was open, and one-time hints already shown.
//
// It is best effort: a missing or corrupt file loads as the default state.
type UIState struct {
	Version int `json:"version"`

	LoggedInUser string `json:"loggedInUser,omitempty"`

	// LastPage is one of: home|search|services|profile
	LastPage string `json:"lastPage,omitempty"`

	SupportSeen  bool `json:"supportSeen,omitempty"`
	DrawerPinned bool `json:"drawerPinned,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.Dir, uiStateFileName)
}

func (s Store) LoadUIState() (*UIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &UIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.uiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UIState{Version: 1}, nil
		}
		return nil, err
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		return &UIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveUIState(st *UIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := s.uiStatePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
