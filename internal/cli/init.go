package cli

import (
	"context"

	"studhub/internal/config"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the data directory (catalog, config.yaml)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.store()
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			cfgPath, cfgCreated, err := config.WriteDefault(app.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Stats opens (and migrates) the catalog, so init always leaves one behind.
			stats, err := s.Stats(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}

			seeded := 0
			if seed {
				seeded, err = s.Seed(context.Background())
				if err != nil {
					return writeErr(cmd, err)
				}
				stats.Listings += seeded
			}
			app.log.Info("data dir initialized")

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":           app.Dir,
					"config":        cfgPath,
					"configCreated": cfgCreated,
					"seeded":        seeded,
					"listings":      stats.Listings,
				},
			})
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Insert the demo listings when the catalog is empty")
	return cmd
}
