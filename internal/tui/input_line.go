package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

var inputLineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// renderInputLine shows a textinput (search query, login name) as one padded
// row of exactly width cells on the input background.
func renderInputLine(width int, view string) string {
	width = max(width, 10)
	field := " " + inputLineFlattener.Replace(view) + " "
	if xansi.StringWidth(field) > width {
		// Reset after the cut so a half-open style does not leak into the border.
		return xansi.Cut(field, 0, width) + "\x1b[0m"
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, field,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
}
