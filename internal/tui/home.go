package tui

import (
	"strings"

	"studhub/internal/counter"
	"studhub/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// statCounters builds the home page counters. Existing counters are
// retargeted so a reload animates from the numbers already on screen.
func statCounters(st model.Stats, prev counter.Set, steps int) counter.Set {
	targets := []struct {
		label    string
		value    float64
		decimals int
	}{
		{"объявлений", float64(st.Listings), 0},
		{"продавцов", float64(st.Sellers), 0},
		{"школ", float64(st.Schools), 0},
		{"средний рейтинг", st.AvgRating, 1},
	}
	out := make(counter.Set, len(targets))
	for i, t := range targets {
		if len(prev) == len(targets) {
			out[i] = prev[i].Retarget(t.value)
			continue
		}
		out[i] = counter.New(t.label, t.value, t.decimals, steps)
	}
	return out
}

func (m appModel) viewHome(width int) string {
	hero := lipgloss.NewStyle().Bold(true).Render("Арендуй и предлагай услуги внутри своей школы")
	sub := styleMuted().Render("Ноутбуки, учебники, репетиторы и ремонт от учеников Binom, NIS и KTL.")

	boxes := make([]string, 0, len(m.counters))
	boxW := (width - 2) / 4
	if boxW < 12 {
		boxW = 12
	}
	for _, c := range m.counters {
		v := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(c.Display())
		box := lipgloss.NewStyle().
			Width(boxW-2).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Render(v + "\n" + styleMuted().Render(c.Label))
		boxes = append(boxes, box)
	}

	lines := []string{
		"",
		hero,
		sub,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		"",
		styleMuted().Render("enter: к объявлениям  tab: меню  ?: поддержка"),
	}
	return strings.Join(lines, "\n")
}
