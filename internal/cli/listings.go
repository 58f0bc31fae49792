package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"studhub/internal/model"
	"studhub/internal/store"

	"github.com/spf13/cobra"
)

// listingsOutput is a page of listings; it also renders as a text table.
type listingsOutput struct {
	Data []model.Listing `json:"data" yaml:"data"`
	Meta listingsMeta    `json:"meta" yaml:"meta"`
}

type listingsMeta struct {
	Total int        `json:"total" yaml:"total"`
	Page  store.Page `json:"page" yaml:"page"`
}

func (o listingsOutput) Table() ([]string, [][]string) {
	return listingsTable(o.Data)
}

type listingOutput struct {
	Data model.Listing `json:"data" yaml:"data"`
}

func (o listingOutput) Table() ([]string, [][]string) {
	return listingsTable([]model.Listing{o.Data})
}

func newListingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "listings",
		Aliases: []string{"listing"},
		Short:   "Manage catalog listings",
	}
	cmd.AddCommand(newListingsAddCmd(app))
	cmd.AddCommand(newListingsListCmd(app))
	cmd.AddCommand(newListingsShowCmd(app))
	cmd.AddCommand(newListingsDeleteCmd(app))
	cmd.AddCommand(newListingsImportCmd(app))
	return cmd
}

func newListingsAddCmd(app *App) *cobra.Command {
	var (
		l      model.Listing
		kind   string
		seller string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			l.Kind = model.ListingKind(strings.ToLower(strings.TrimSpace(kind)))
			l.Seller = strings.TrimSpace(seller)
			if l.Seller == "" {
				l.Seller = app.currentUser()
			}
			if l.Seller == "" {
				return writeErr(cmd, errFlag("seller", "", "required (or use --user / `studhub login`)"))
			}
			out, err := app.store().Add(context.Background(), l)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("listing added")
			return writeOut(cmd, app, listingOutput{Data: out})
		},
	}
	cmd.Flags().StringVar(&l.Title, "title", "", "Listing title")
	cmd.Flags().StringVar(&l.Description, "description", "", "Listing description (markdown)")
	cmd.Flags().StringVar(&l.Category, "category", "", "Category (see `studhub filters`)")
	cmd.Flags().StringVar(&l.Location, "location", "", "School (see `studhub filters`)")
	cmd.Flags().IntVar(&l.Price, "price", 0, "Price")
	cmd.Flags().Float64Var(&l.Rating, "rating", 0, "Seller rating within [0, 5]")
	cmd.Flags().StringVar(&kind, "kind", string(model.ListingKindRental), "rental|service")
	cmd.Flags().StringVar(&seller, "seller", "", "Seller name (default: current user)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newListingsListCmd(app *App) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings (best rated first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			page := store.Page{Limit: limit, Offset: offset}
			if !cmd.Flags().Changed("limit") {
				page.Limit = app.cfg.UI.PageSize
			}
			res, err := app.store().List(context.Background(), page)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, listingsOutput{
				Data: res.Listings,
				Meta: listingsMeta{Total: res.Total, Page: page},
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (default: ui.page_size)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many results")
	return cmd
}

func newListingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <listing-id>",
		Short: "Show a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.store().Get(context.Background(), args[0])
			if err != nil {
				return writeErr(cmd, listingErr(args[0], err))
			}
			return writeOut(cmd, app, listingOutput{Data: l})
		},
	}
}

func newListingsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <listing-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a listing",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store().Delete(context.Background(), args[0]); err != nil {
				return writeErr(cmd, listingErr(args[0], err))
			}
			app.log.Info("listing deleted")
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": args[0], "deleted": true},
			})
		},
	}
}

func newListingsImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml|->",
		Short: "Import listings from a YAML file (all or nothing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			n, err := app.store().ImportYAML(context.Background(), r)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("listings imported")
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"imported": n},
			})
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the home page numbers (listings, sellers, schools, avg rating)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store().Stats(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}
}
