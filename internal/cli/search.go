package cli

import (
	"context"
	"fmt"
	"strconv"

	"studhub/internal/filter"
	"studhub/internal/model"
	"studhub/internal/store"

	"github.com/spf13/cobra"
)

// searchOutput is the envelope printed by `studhub search`.
type searchOutput struct {
	Data []model.Listing `json:"data" yaml:"data"`
	Meta searchMeta      `json:"meta" yaml:"meta"`
}

type searchMeta struct {
	Total   int          `json:"total" yaml:"total"`
	Filters filter.State `json:"filters" yaml:"filters"`
	// Narrowed is false when no axis restricts the results (the query aside).
	Narrowed bool           `json:"narrowed" yaml:"narrowed"`
	Labels   []filter.Label `json:"labels" yaml:"labels"`
	Page     store.Page     `json:"page" yaml:"page"`
}

func (o searchOutput) Table() ([]string, [][]string) {
	return listingsTable(o.Data)
}

func listingsTable(ls []model.Listing) ([]string, [][]string) {
	rows := make([][]string, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, []string{
			l.ID,
			l.Title,
			l.Category,
			l.Location,
			strconv.Itoa(l.Price),
			strconv.FormatFloat(l.Rating, 'f', 1, 64),
		})
	}
	return []string{"ID", "Title", "Category", "School", "Price", "Rating"}, rows
}

func newSearchCmd(app *App) *cobra.Command {
	var (
		query    string
		category string
		location string
		minPrice int
		maxPrice int
		rating   int
		remove   []string
		reset    []string
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search listings with the same filters as the TUI search bar",
		RunE: func(cmd *cobra.Command, args []string) error {
			page := store.Page{Limit: limit, Offset: offset}
			if !cmd.Flags().Changed("limit") {
				page.Limit = app.cfg.UI.PageSize
			}

			var res store.SearchResult
			var searchErr error
			m := filter.NewManager(
				filter.WithLogger(app.log),
				filter.WithSearchFunc(func(q string, st filter.State) {
					res, searchErr = app.store().Search(context.Background(), st, page)
				}),
			)
			m.SetQuery(query)

			if cmd.Flags().Changed("category") {
				if !filter.IsCategory(category) {
					return writeErr(cmd, errFlag("category", category, "unknown category (see `studhub filters`)"))
				}
				m.SetCategory(category)
			}
			if cmd.Flags().Changed("location") {
				if !filter.IsLocation(location) {
					return writeErr(cmd, errFlag("location", location, "unknown school (see `studhub filters`)"))
				}
				m.SetLocation(location)
			}
			if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
				pr := filter.PriceRange{Min: minPrice, Max: maxPrice}
				if pr.Min < filter.PriceMin || pr.Max > filter.PriceMax || pr.Min > pr.Max {
					return writeErr(cmd, errFlag("min-price/--max-price", pr, fmt.Sprintf("need %d <= min <= max <= %d", filter.PriceMin, filter.PriceMax)))
				}
				m.SetPriceRange(pr)
			}
			if cmd.Flags().Changed("rating") {
				if _, err := m.SetFilter(filter.AxisRating, rating); err != nil {
					return writeErr(cmd, errFlag("rating", rating, "must be one of 0, 3, 4, 5"))
				}
			}
			for _, label := range remove {
				m.RemoveLabel(label)
			}
			for _, name := range reset {
				axis, err := filter.ParseAxis(name)
				if err != nil {
					return writeErr(cmd, errFlag("reset", name, "want category, location, price or rating"))
				}
				m.Reset(axis)
			}

			m.TriggerSearch()
			if searchErr != nil {
				return writeErr(cmd, searchErr)
			}
			app.log.Info("cli search")
			return writeOut(cmd, app, searchOutput{
				Data: res.Listings,
				Meta: searchMeta{
					Total:    res.Total,
					Filters:  m.State(),
					Narrowed: !m.State().IsZero(),
					Labels:   m.Labels(),
					Page:     page,
				},
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Free-text query (all words must match)")
	cmd.Flags().StringVar(&category, "category", "", "Category filter")
	cmd.Flags().StringVar(&location, "location", "", "School filter")
	cmd.Flags().IntVar(&minPrice, "min-price", filter.PriceMin, "Minimum price")
	cmd.Flags().IntVar(&maxPrice, "max-price", filter.PriceMax, "Maximum price")
	cmd.Flags().IntVar(&rating, "rating", 0, "Minimum rating (0, 3, 4, 5)")
	cmd.Flags().StringArrayVar(&remove, "remove", nil, "Remove an active filter by its label (repeatable)")
	cmd.Flags().StringArrayVar(&reset, "reset", nil, "Reset a filter axis: category|location|price|rating (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (default: ui.page_size)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many results")
	return cmd
}

func newFiltersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Show the filter options (categories, schools, ratings, price bounds)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"axes":       filter.Axes,
					"categories": filter.Categories(),
					"locations":  filter.Locations(),
					"ratings":    filter.RatingTiers(),
					"price":      filter.FullPriceRange(),
				},
			})
		},
	}
}
