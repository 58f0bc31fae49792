package cli

import (
	"context"

	"studhub/internal/filter"
	"studhub/internal/model"
	"studhub/internal/publish"
	"studhub/internal/store"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export listings as Markdown pages",
	}

	listingCmd := &cobra.Command{
		Use:   "listing <listing-id>",
		Short: "Publish a single listing as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.store().Get(context.Background(), args[0])
			if err != nil {
				return writeErr(cmd, listingErr(args[0], err))
			}
			res, err := publish.WriteListing(l, toDir, publish.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Publish an index plus one page per listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := allListings(context.Background(), app.store())
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := publish.WriteCatalog(all, toDir, publish.WriteOptions{
				Overwrite:     overwrite,
				CategoryOrder: filter.Categories(),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("catalog published")
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"listings": len(all)},
			})
		},
	}

	cmd.PersistentFlags().StringVar(&toDir, "to", "", "Output directory")
	_ = cmd.MarkPersistentFlagRequired("to")
	cmd.PersistentFlags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")

	cmd.AddCommand(listingCmd)
	cmd.AddCommand(catalogCmd)
	return cmd
}

// allListings pages through the whole catalog.
func allListings(ctx context.Context, s store.Store) ([]model.Listing, error) {
	var all []model.Listing
	page := store.Page{Limit: 200}
	for {
		res, err := s.List(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Listings...)
		page.Offset += len(res.Listings)
		if len(res.Listings) == 0 || page.Offset >= res.Total {
			return all, nil
		}
	}
}
