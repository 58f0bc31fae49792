package filter

import (
	"strings"

	"go.uber.org/zap"
)

// SearchFunc receives the query and a copy of the filters when a search is triggered.
type SearchFunc func(query string, filters State)

type Option func(*Manager)

func WithSearchFunc(fn SearchFunc) Option {
	return func(m *Manager) { m.onSearch = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithState starts the manager from an existing snapshot instead of the cleared state.
func WithState(s State) Option {
	return func(m *Manager) { m.state = s }
}

// Manager owns the search bar filter state. It is not safe for concurrent use:
// exactly one UI component mutates it, from its own event loop.
type Manager struct {
	state    State
	labels   []Label
	onSearch SearchFunc
	log      *zap.Logger
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		state: NewState(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.labels = ActiveLabels(m.state)
	return m
}

func (m *Manager) State() State { return m.state }

func (m *Manager) Query() string { return m.state.Query }

// Labels returns a copy of the active labels.
func (m *Manager) Labels() []Label {
	out := make([]Label, len(m.labels))
	copy(out, m.labels)
	return out
}

func (m *Manager) LabelTexts() []string { return LabelTexts(m.labels) }

// SetQuery stores text verbatim. It does not search.
func (m *Manager) SetQuery(text string) {
	m.state.Query = text
}

// TriggerSearch hands the current query and filters to the search callback.
// A nil callback makes it a no-op.
func (m *Manager) TriggerSearch() {
	if m.onSearch == nil {
		return
	}
	snap := m.state
	m.log.Debug("search triggered",
		zap.String("query", snap.Query),
		zap.Strings("labels", LabelTexts(m.labels)),
		zap.Int("priceMin", snap.Price.Min),
		zap.Int("priceMax", snap.Price.Max),
	)
	m.onSearch(snap.Query, snap)
}

// SetFilter replaces one axis. Accepted values:
//   - category, location: string
//   - priceRange: PriceRange, [2]int or a two-element []int
//   - rating: int from RatingTiers
//
// On error the state is left untouched.
func (m *Manager) SetFilter(axis Axis, value any) (State, error) {
	next := m.state
	switch axis {
	case AxisCategory, AxisLocation:
		s, ok := value.(string)
		if !ok {
			return m.state, &InvalidValueError{Axis: axis, Value: value, Reason: "want string"}
		}
		if axis == AxisCategory {
			next.Category = s
		} else {
			next.Location = s
		}
	case AxisPrice:
		p, ok := asPriceRange(value)
		if !ok {
			return m.state, &InvalidValueError{Axis: axis, Value: value, Reason: "want [min, max]"}
		}
		next.Price = p
	case AxisRating:
		r, ok := value.(int)
		if !ok {
			return m.state, &InvalidValueError{Axis: axis, Value: value, Reason: "want int"}
		}
		if !ValidRating(r) {
			return m.state, &InvalidValueError{Axis: axis, Value: value, Reason: "not a rating tier"}
		}
		next.Rating = r
	default:
		return m.state, ErrUnknownAxis
	}
	m.log.Debug("filter set", zap.String("axis", string(axis)), zap.Any("value", value))
	return m.apply(next), nil
}

func (m *Manager) SetCategory(category string) State {
	next := m.state
	next.Category = category
	return m.apply(next)
}

func (m *Manager) SetLocation(location string) State {
	next := m.state
	next.Location = location
	return m.apply(next)
}

// SetPriceRange stores p as given; bounding it is the slider's job.
func (m *Manager) SetPriceRange(p PriceRange) State {
	next := m.state
	next.Price = p
	return m.apply(next)
}

func (m *Manager) SetRating(rating int) (State, error) {
	return m.SetFilter(AxisRating, rating)
}

// ClearAll resets every axis and empties the labels. The query is kept.
func (m *Manager) ClearAll() State {
	next := NewState()
	next.Query = m.state.Query
	m.log.Debug("filters cleared")
	return m.apply(next)
}

// RemoveLabel resets the axis that produced text, matching first against the
// category options, then the location options, then the rating marker.
// Unrecognised text is ignored.
func (m *Manager) RemoveLabel(text string) State {
	switch {
	case IsCategory(text):
		return m.Reset(AxisCategory)
	case IsLocation(text):
		return m.Reset(AxisLocation)
	case strings.Contains(text, ratingUnit):
		return m.Reset(AxisRating)
	default:
		m.log.Debug("unknown label ignored", zap.String("label", text))
		return m.state
	}
}

// Remove resets exactly the axis l was derived from.
func (m *Manager) Remove(l Label) State {
	return m.Reset(l.Axis)
}

// Reset puts one axis back to its unset value.
func (m *Manager) Reset(axis Axis) State {
	m.log.Debug("filter reset", zap.String("axis", string(axis)))
	return m.apply(m.state.reset(axis))
}

func (m *Manager) apply(next State) State {
	m.state = next
	m.labels = ActiveLabels(next)
	return next
}

func asPriceRange(v any) (PriceRange, bool) {
	switch t := v.(type) {
	case PriceRange:
		return t, true
	case [2]int:
		return PriceRange{Min: t[0], Max: t[1]}, true
	case []int:
		if len(t) != 2 {
			return PriceRange{}, false
		}
		return PriceRange{Min: t[0], Max: t[1]}, true
	default:
		return PriceRange{}, false
	}
}
