package filter

import (
	"fmt"
	"strings"
)

// Axis names one independent dimension of the filter state.
type Axis string

const (
	AxisCategory Axis = "category"
	AxisLocation Axis = "location"
	AxisPrice    Axis = "priceRange"
	AxisRating   Axis = "rating"
)

// Axes lists every axis in label order (price never produces a label).
var Axes = []Axis{AxisCategory, AxisLocation, AxisPrice, AxisRating}

// ParseAxis accepts the canonical axis names plus a few CLI-friendly aliases.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "cat":
		return AxisCategory, nil
	case "location", "school", "loc":
		return AxisLocation, nil
	case "pricerange", "price":
		return AxisPrice, nil
	case "rating", "stars":
		return AxisRating, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAxis, s)
	}
}

type PriceRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// FullPriceRange is the unset price range.
func FullPriceRange() PriceRange {
	return PriceRange{Min: PriceMin, Max: PriceMax}
}

// IsFull reports whether the range covers the whole slider.
func (p PriceRange) IsFull() bool {
	return p.Min <= PriceMin && p.Max >= PriceMax
}

func (p PriceRange) String() string {
	return fmt.Sprintf("%d–%d", p.Min, p.Max)
}

// State is one immutable snapshot of the search bar filters. It holds no
// references, so a copy never observes later mutations.
type State struct {
	Query    string     `json:"query" yaml:"query"`
	Category string     `json:"category" yaml:"category"`
	Location string     `json:"location" yaml:"location"`
	Price    PriceRange `json:"priceRange" yaml:"priceRange"`
	Rating   int        `json:"rating" yaml:"rating"`
}

// NewState returns a state with every axis unset.
func NewState() State {
	return State{Price: FullPriceRange()}
}

func (s State) CategorySet() bool {
	return s.Category != "" && s.Category != AllCategories
}

func (s State) LocationSet() bool {
	return s.Location != "" && s.Location != AllLocations
}

func (s State) RatingSet() bool { return s.Rating > 0 }

func (s State) PriceSet() bool { return !s.Price.IsFull() }

// IsZero reports whether no axis narrows the search. The query is not an axis.
func (s State) IsZero() bool {
	return !s.CategorySet() && !s.LocationSet() && !s.RatingSet() && !s.PriceSet()
}

// reset returns s with axis put back to its unset value.
func (s State) reset(axis Axis) State {
	switch axis {
	case AxisCategory:
		s.Category = ""
	case AxisLocation:
		s.Location = ""
	case AxisPrice:
		s.Price = FullPriceRange()
	case AxisRating:
		s.Rating = 0
	}
	return s
}
