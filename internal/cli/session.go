package cli

import (
	"strings"

	"studhub/internal/session"
	"studhub/internal/store"

	"github.com/spf13/cobra"
)

// currentUser is --user when given, otherwise the user remembered by `login`.
func (app *App) currentUser() string {
	if u := strings.TrimSpace(app.User); u != "" {
		return u
	}
	st, err := app.store().LoadUIState()
	if err != nil || st == nil {
		return ""
	}
	return st.LoggedInUser
}

// loadSession restores a session controller from ui_state.json. Changes made
// through the controller are mirrored into the returned state for saving.
func (app *App) loadSession() (*session.Controller, *store.UIState, error) {
	st, err := app.store().LoadUIState()
	if err != nil {
		return nil, nil, err
	}
	c := session.NewController()
	c.Restore(st.LoggedInUser, st.LastPage)
	c.OnChange(func(ctx session.Context) {
		st.LoggedInUser = ctx.UserName()
		st.LastPage = string(ctx.CurrentPage)
	})
	return c, st, nil
}

func sessionData(ctx session.Context) map[string]any {
	return map[string]any{
		"loggedIn": ctx.LoggedIn,
		"user":     ctx.UserName(),
		"page":     ctx.CurrentPage,
	}
}

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <name>",
		Short: "Remember a user for the TUI and for `listings add`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, st, err := app.loadSession()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, err := c.Login(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := app.store().SaveUIState(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sessionData(ctx)})
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, st, err := app.loadSession()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := c.Logout()
			if err := app.store().SaveUIState(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sessionData(ctx)})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := app.loadSession()
			if err != nil {
				return writeErr(cmd, err)
			}
			if u := strings.TrimSpace(app.User); u != "" {
				if _, err := c.Login(u); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": sessionData(c.Snapshot())})
		},
	}
}
