package cli

import (
	"fmt"
	"os"
	"strings"

	"studhub/internal/config"
	"studhub/internal/format"
	"studhub/internal/logging"
	"studhub/internal/store"
	"studhub/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir        string
	User       string
	PrettyJSON bool
	Format     string

	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{log: logging.Nop()}

	cmd := &cobra.Command{
		Use:          "studhub",
		Short:        "Student rentals and services marketplace (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  studhub

  # Create the data dir with demo listings
  studhub init --seed

  # Scriptable search
  studhub search --category Электроника --rating 4
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		_ = app.log.Sync()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("STUDHUB_DIR", ""), "Data directory (default: user config dir/studhub)")
	cmd.PersistentFlags().StringVar(&app.User, "user", envOr("STUDHUB_USER", ""), "Act as this user (overrides the logged in user)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("STUDHUB_FORMAT", "json"), "Output format (json|yaml|text)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newFiltersCmd(app))
	cmd.AddCommand(newListingsCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newPublishCmd(app))

	return cmd
}

// setup resolves the data dir, then loads config and the logger from it.
func (app *App) setup() error {
	if strings.TrimSpace(app.Dir) == "" {
		d, err := store.DataDir()
		if err != nil {
			return err
		}
		app.Dir = d
	}
	cfg, err := config.Load(app.Dir)
	if err != nil {
		return err
	}
	app.cfg = cfg
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	app.log = log.With(zap.String("dir", app.Dir))
	return nil
}

func (app *App) store() store.Store {
	return store.Store{Dir: app.Dir}
}

func runTUI(app *App) error {
	s := app.store()
	if err := s.Ensure(); err != nil {
		return err
	}
	app.log.Info("starting tui")
	return tui.Run(tui.Options{Store: s, Config: app.cfg, Logger: app.log, User: app.User})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
