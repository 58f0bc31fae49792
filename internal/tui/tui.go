package tui

import (
	"studhub/internal/config"
	"studhub/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Store  store.Store
	Config config.Config
	Logger *zap.Logger
	// User, when set, acts as the logged in user for this run without
	// replacing the one remembered in ui_state.json.
	User string
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Config.UI.Theme)

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
