package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The palette must stay readable on light and dark terminals, so colors are
// adaptive and "faint" is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorSurfaceBg  = ac("255", "235")
	colorSurfaceFg  = ac("235", "252")
	colorControlBg  = ac("252", "236")
	colorInputBg    = ac("254", "234")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "255")
	colorRating     = ac("130", "220")
	colorError      = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleBrand() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1)
}

func stylePill(selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	if selected {
		st = st.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	}
	return st
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile also honors CLICOLOR, which can turn colors off in
// an interactive session. Only NO_COLOR is respected here; otherwise the
// terminal's reported capabilities win, upgraded by TERM/COLORTERM hints.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference picks the adaptive palette variant.
//
// Priority:
// 1) ui.theme from config.yaml (light|dark; auto falls through)
// 2) STUDHUB_TUI_DARKBG=true|false
// 3) COLORFGBG ("fg;bg", bg < 7 is dark)
func applyThemePreference(theme string) {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("STUDHUB_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
