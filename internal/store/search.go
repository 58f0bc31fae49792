package store

import (
	"strings"

	"studhub/internal/filter"
	"studhub/internal/model"
)

const defaultPageLimit = 50

// Page selects a window of search results. A zero Limit means defaultPageLimit.
// Kind and Seller narrow the page to one listing kind or one seller when set;
// they are not part of the search bar's filters.
type Page struct {
	Limit  int               `json:"limit" yaml:"limit"`
	Offset int               `json:"offset" yaml:"offset"`
	Kind   model.ListingKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Seller string            `json:"seller,omitempty" yaml:"seller,omitempty"`
}

func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// buildSearchWhere turns a filter snapshot into a WHERE clause and its args.
// Unset axes and sentinel options add no condition. A price bound sitting at
// the slider edge means "no bound", so listings above PriceMax stay visible
// until the user drags the max handle.
func buildSearchWhere(st filter.State, p Page) (string, []any) {
	var conditions []string
	var args []any

	if p.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(p.Kind))
	}
	if seller := strings.TrimSpace(p.Seller); seller != "" {
		conditions = append(conditions, "seller = ?")
		args = append(args, seller)
	}

	for _, word := range strings.Fields(strings.ToLower(st.Query)) {
		conditions = append(conditions, "instr(search_text, ?) > 0")
		args = append(args, word)
	}
	if st.CategorySet() {
		conditions = append(conditions, "category = ?")
		args = append(args, st.Category)
	}
	if st.LocationSet() {
		conditions = append(conditions, "location = ?")
		args = append(args, st.Location)
	}
	if st.Price.Min > filter.PriceMin {
		conditions = append(conditions, "price >= ?")
		args = append(args, st.Price.Min)
	}
	if st.Price.Max < filter.PriceMax {
		conditions = append(conditions, "price <= ?")
		args = append(args, st.Price.Max)
	}
	if st.RatingSet() {
		conditions = append(conditions, "rating >= ?")
		args = append(args, st.Rating)
	}

	if len(conditions) == 0 {
		return "1=1", nil
	}
	return strings.Join(conditions, " AND "), args
}

// searchText is the lowercased haystack matched by query words. SQLite's
// lower() only folds ASCII, so Cyrillic is folded here instead.
func searchText(title, description, category, seller string) string {
	return strings.ToLower(strings.Join([]string{title, description, category, seller}, " "))
}
