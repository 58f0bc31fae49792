package tui

import (
	"context"

	"studhub/internal/filter"
	"studhub/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const priceStep = 500

type searchRequest struct {
	Query   string
	Filters filter.State
}

type searchResultMsg struct {
	seq int
	res store.SearchResult
	err error
}

// searchBar owns the filter manager for the app's one search bar. The
// manager's callback only records the request; the app turns it into a
// command so the catalog is queried off the update loop.
type searchBar struct {
	filters *filter.Manager
	pending *searchRequest
}

func newSearchBar(log *zap.Logger) *searchBar {
	b := &searchBar{}
	b.filters = filter.NewManager(
		filter.WithLogger(log),
		filter.WithSearchFunc(func(query string, st filter.State) {
			b.pending = &searchRequest{Query: query, Filters: st}
		}),
	)
	return b
}

// search triggers the manager and returns what its callback received.
func (b *searchBar) search() (searchRequest, bool) {
	b.filters.TriggerSearch()
	r := b.pending
	b.pending = nil
	if r == nil {
		return searchRequest{}, false
	}
	return *r, true
}

func searchCmd(s store.Store, seq int, st filter.State, page store.Page) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Search(context.Background(), st, page)
		return searchResultMsg{seq: seq, res: res, err: err}
	}
}

// cycleOption returns the option dir steps away from cur. An unset cur counts
// as the leading "all" sentinel.
func cycleOption(opts []string, cur string, dir int) string {
	if len(opts) == 0 {
		return cur
	}
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = i
			break
		}
	}
	n := len(opts)
	return opts[((idx+dir)%n+n)%n]
}

// stepPrice moves the slider handles, keeping min <= max inside the bounds.
func stepPrice(p filter.PriceRange, dMin, dMax int) filter.PriceRange {
	p.Min = clamp(p.Min+dMin, filter.PriceMin, p.Max)
	p.Max = clamp(p.Max+dMax, p.Min, filter.PriceMax)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
