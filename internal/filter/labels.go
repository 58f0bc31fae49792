package filter

import "strconv"

// Label is one active filter as shown in the pills row. Axis records which
// axis produced it so removal never has to guess from the text.
type Label struct {
	Axis Axis   `json:"axis" yaml:"axis"`
	Text string `json:"text" yaml:"text"`
}

// RatingLabel formats a minimum rating, e.g. "4+ звезд".
func RatingLabel(rating int) string {
	return strconv.Itoa(rating) + "+ " + ratingUnit
}

// ActiveLabels derives the pills for s: category, then location, then rating.
// It is recomputed from scratch on every mutation.
func ActiveLabels(s State) []Label {
	labels := []Label{}
	if s.CategorySet() {
		labels = append(labels, Label{Axis: AxisCategory, Text: s.Category})
	}
	if s.LocationSet() {
		labels = append(labels, Label{Axis: AxisLocation, Text: s.Location})
	}
	if s.RatingSet() {
		labels = append(labels, Label{Axis: AxisRating, Text: RatingLabel(s.Rating)})
	}
	return labels
}

func LabelTexts(labels []Label) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.Text)
	}
	return out
}
