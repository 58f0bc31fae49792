package filter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewManager_StartsCleared(t *testing.T) {
	t.Parallel()

	m := NewManager()
	want := State{Price: PriceRange{Min: 0, Max: 10000}}
	if diff := cmp.Diff(want, m.State()); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
	if got := m.Labels(); len(got) != 0 {
		t.Fatalf("expected no labels, got %#v", got)
	}
}

func TestSetFilter_ReplacesOnlyNamedAxis(t *testing.T) {
	t.Parallel()

	base := State{
		Query:    "ноутбук",
		Category: "Мебель",
		Location: "Binom 1 (BI-1)",
		Price:    PriceRange{Min: 100, Max: 900},
		Rating:   3,
	}

	tests := []struct {
		name  string
		axis  Axis
		value any
		want  State
	}{
		{
			name:  "category",
			axis:  AxisCategory,
			value: "Электроника",
			want:  State{Query: "ноутбук", Category: "Электроника", Location: "Binom 1 (BI-1)", Price: PriceRange{100, 900}, Rating: 3},
		},
		{
			name:  "location",
			axis:  AxisLocation,
			value: "NIS Astana",
			want:  State{Query: "ноутбук", Category: "Мебель", Location: "NIS Astana", Price: PriceRange{100, 900}, Rating: 3},
		},
		{
			name:  "price struct",
			axis:  AxisPrice,
			value: PriceRange{Min: 0, Max: 2500},
			want:  State{Query: "ноутбук", Category: "Мебель", Location: "Binom 1 (BI-1)", Price: PriceRange{0, 2500}, Rating: 3},
		},
		{
			name:  "price pair",
			axis:  AxisPrice,
			value: [2]int{500, 600},
			want:  State{Query: "ноутбук", Category: "Мебель", Location: "Binom 1 (BI-1)", Price: PriceRange{500, 600}, Rating: 3},
		},
		{
			name:  "price slice",
			axis:  AxisPrice,
			value: []int{10, 20},
			want:  State{Query: "ноутбук", Category: "Мебель", Location: "Binom 1 (BI-1)", Price: PriceRange{10, 20}, Rating: 3},
		},
		{
			name:  "rating",
			axis:  AxisRating,
			value: 5,
			want:  State{Query: "ноутбук", Category: "Мебель", Location: "Binom 1 (BI-1)", Price: PriceRange{100, 900}, Rating: 5},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewManager(WithState(base))
			got, err := m.SetFilter(tt.axis, tt.value)
			if err != nil {
				t.Fatalf("SetFilter: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("returned state mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, m.State()); diff != "" {
				t.Fatalf("stored state mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(ActiveLabels(tt.want), m.Labels()); diff != "" {
				t.Fatalf("labels not recomputed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetFilter_RejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		axis  Axis
		value any
	}{
		{name: "rating outside tiers", axis: AxisRating, value: 2},
		{name: "negative rating", axis: AxisRating, value: -1},
		{name: "rating as string", axis: AxisRating, value: "4"},
		{name: "category as int", axis: AxisCategory, value: 7},
		{name: "location as nil", axis: AxisLocation, value: nil},
		{name: "price wrong length", axis: AxisPrice, value: []int{1}},
		{name: "price as string", axis: AxisPrice, value: "0-100"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewManager()
			m.SetCategory("Спорт")
			before := m.State()

			_, err := m.SetFilter(tt.axis, tt.value)
			var ive *InvalidValueError
			if !errors.As(err, &ive) {
				t.Fatalf("expected InvalidValueError, got %v", err)
			}
			if ive.Axis != tt.axis {
				t.Fatalf("error axis = %q, want %q", ive.Axis, tt.axis)
			}
			if diff := cmp.Diff(before, m.State()); diff != "" {
				t.Fatalf("state changed on error (-before +after):\n%s", diff)
			}
		})
	}
}

func TestSetFilter_UnknownAxis(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if _, err := m.SetFilter(Axis("colour"), "red"); !errors.Is(err, ErrUnknownAxis) {
		t.Fatalf("expected ErrUnknownAxis, got %v", err)
	}
}

func TestClearAll_ResetsEveryAxis(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.SetQuery("стол")
	m.SetCategory("Мебель")
	m.SetLocation("Binom 3 (BI-3)")
	m.SetPriceRange(PriceRange{Min: 1000, Max: 3000})
	if _, err := m.SetRating(4); err != nil {
		t.Fatalf("SetRating: %v", err)
	}

	want := State{Query: "стол", Price: PriceRange{Min: 0, Max: 10000}}
	for i := 0; i < 2; i++ {
		got := m.ClearAll()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("ClearAll #%d mismatch (-want +got):\n%s", i+1, diff)
		}
		if n := len(m.Labels()); n != 0 {
			t.Fatalf("ClearAll #%d left %d labels", i+1, n)
		}
	}
}

func TestRoundTrip_CategoryLabel(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if _, err := m.SetFilter(AxisCategory, "Электроника"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if !containsText(m.LabelTexts(), "Электроника") {
		t.Fatalf("expected label list to contain category, got %#v", m.LabelTexts())
	}

	st := m.RemoveLabel("Электроника")
	if st.Category != "" {
		t.Fatalf("expected category unset, got %q", st.Category)
	}
	if containsText(m.LabelTexts(), "Электроника") {
		t.Fatalf("expected label removed, got %#v", m.LabelTexts())
	}
}

func TestScenario_RatingThenLocation(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.ClearAll()

	if _, err := m.SetFilter(AxisRating, 4); err != nil {
		t.Fatalf("SetFilter rating: %v", err)
	}
	if diff := cmp.Diff([]string{"4+ звезд"}, m.LabelTexts()); diff != "" {
		t.Fatalf("labels after rating (-want +got):\n%s", diff)
	}

	if _, err := m.SetFilter(AxisLocation, "Binom 2 (BI-2)"); err != nil {
		t.Fatalf("SetFilter location: %v", err)
	}
	if diff := cmp.Diff([]string{"Binom 2 (BI-2)", "4+ звезд"}, m.LabelTexts()); diff != "" {
		t.Fatalf("labels after location (-want +got):\n%s", diff)
	}
}

func TestSentinels_NeverProduceLabels(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if _, err := m.SetFilter(AxisCategory, "Все категории"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if _, err := m.SetFilter(AxisLocation, "Все школы"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if got := m.State().Category; got != "Все категории" {
		t.Fatalf("sentinel should be stored verbatim, got %q", got)
	}
	if n := len(m.Labels()); n != 0 {
		t.Fatalf("expected no labels for sentinels, got %#v", m.LabelTexts())
	}
}

func TestRemoveLabel_FirstMatchWins(t *testing.T) {
	t.Parallel()

	full := State{
		Category: "Спорт",
		Location: "KTL Almaty",
		Price:    PriceRange{Min: 200, Max: 800},
		Rating:   5,
	}

	tests := []struct {
		name  string
		label string
		want  State
	}{
		{name: "category", label: "Спорт", want: State{Location: "KTL Almaty", Price: PriceRange{200, 800}, Rating: 5}},
		{name: "location", label: "KTL Almaty", want: State{Category: "Спорт", Price: PriceRange{200, 800}, Rating: 5}},
		{name: "rating", label: "5+ звезд", want: State{Category: "Спорт", Location: "KTL Almaty", Price: PriceRange{200, 800}}},
		{name: "any text with rating marker", label: "3 звезд", want: State{Category: "Спорт", Location: "KTL Almaty", Price: PriceRange{200, 800}}},
		{name: "category sentinel still matches category enum", label: "Все категории", want: State{Location: "KTL Almaty", Price: PriceRange{200, 800}, Rating: 5}},
		{name: "unknown is ignored", label: "Велосипеды", want: full},
		{name: "empty is ignored", label: "", want: full},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewManager(WithState(full))
			got := m.RemoveLabel(tt.label)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("RemoveLabel(%q) mismatch (-want +got):\n%s", tt.label, diff)
			}
			if diff := cmp.Diff(ActiveLabels(tt.want), m.Labels()); diff != "" {
				t.Fatalf("labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRemove_UsesTaggedAxis(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.SetCategory("Мебель")
	m.SetLocation("Binom 4 (BI-4)")

	labels := m.Labels()
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %#v", labels)
	}
	got := m.Remove(labels[1])
	if got.Location != "" || got.Category != "Мебель" {
		t.Fatalf("Remove(location) = %#v", got)
	}
	if diff := cmp.Diff([]Label{{Axis: AxisCategory, Text: "Мебель"}}, m.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestTriggerSearch_PassesIsolatedSnapshot(t *testing.T) {
	t.Parallel()

	var calls int
	var gotQuery string
	var gotFilters State
	m := NewManager(WithSearchFunc(func(query string, filters State) {
		calls++
		gotQuery = query
		gotFilters = filters
	}))

	m.SetQuery("учебник физики")
	m.SetCategory("Книги и учебники")
	m.SetPriceRange(PriceRange{Min: 0, Max: 3000})
	want := m.State()

	m.TriggerSearch()
	if calls != 1 {
		t.Fatalf("expected exactly one callback, got %d", calls)
	}
	if gotQuery != "учебник физики" {
		t.Fatalf("query = %q", gotQuery)
	}
	if diff := cmp.Diff(want, gotFilters); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}

	// Later mutations must not leak into the captured snapshot.
	m.SetQuery("другое")
	m.ClearAll()
	if diff := cmp.Diff(want, gotFilters); diff != "" {
		t.Fatalf("captured snapshot changed (-want +got):\n%s", diff)
	}
}

func TestSetQuery_DoesNotSearch(t *testing.T) {
	t.Parallel()

	calls := 0
	m := NewManager(WithSearchFunc(func(string, State) { calls++ }))
	m.SetQuery("диван")
	if calls != 0 {
		t.Fatalf("SetQuery triggered %d searches", calls)
	}
	if m.Query() != "диван" {
		t.Fatalf("query = %q", m.Query())
	}
}

func TestTriggerSearch_NilCallback(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.TriggerSearch()
}

func TestLabels_ReturnsCopy(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.SetCategory("Одежда")
	ls := m.Labels()
	ls[0].Text = "mutated"
	if m.LabelTexts()[0] != "Одежда" {
		t.Fatalf("internal labels were mutated through the returned slice")
	}
}

func containsText(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
