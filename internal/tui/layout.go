package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	drawerWidth   = 22
	minPageWidth  = 40
	minPageHeight = 8
)

// fitWidth pads or cuts one line to exactly width columns, ANSI-aware.
// Cut lines end with an ellipsis.
func fitWidth(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the work on absurdly long lines before measuring them.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width+1)
	}
	w := xansi.StringWidth(ln)
	switch {
	case w > width && width == 1:
		ln = xansi.Cut(ln, 0, 1)
	case w > width:
		ln = xansi.Cut(ln, 0, width-1) + "…"
	}
	if w = xansi.StringWidth(ln); w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// normalizePane forces s to exactly width x height cells so panes can be
// joined side by side without jitter.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// wrapTokens lays pre-rendered tokens out in rows no wider than width.
func wrapTokens(tokens []string, width int, gap string) []string {
	var rows []string
	cur := ""
	for _, tok := range tokens {
		if cur == "" {
			cur = tok
			continue
		}
		if xansi.StringWidth(cur)+xansi.StringWidth(gap)+xansi.StringWidth(tok) > width {
			rows = append(rows, cur)
			cur = tok
			continue
		}
		cur += gap + tok
	}
	if cur != "" {
		rows = append(rows, cur)
	}
	return rows
}

func placeCentered(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
