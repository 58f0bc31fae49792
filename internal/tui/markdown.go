package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

type mdKey struct {
	dark  bool
	width int
}

// mdCache holds one glamour renderer per palette and wrap width. Building a
// renderer parses the whole style sheet, and modals re-render on every frame.
// glamour.WithAutoStyle is not used: its terminal query can block the TUI.
type mdCache struct {
	mu sync.Mutex
	r  map[mdKey]*glamour.TermRenderer
}

var markdownRenderers = &mdCache{r: map[mdKey]*glamour.TermRenderer{}}

func (c *mdCache) get(k mdKey) (*glamour.TermRenderer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.r[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyleConfig(k.dark)),
		glamour.WithWordWrap(k.width),
	)
	if err != nil {
		return nil, err
	}
	c.r[k] = r
	return r, nil
}

// renderMarkdown renders listing descriptions and help topics for a modal body.
// On a renderer error the source text is shown as is.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	r, err := markdownRenderers.get(mdKey{dark: markdownDark(), width: max(width, 10)})
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyleConfig(dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	pick := func(c lipgloss.AdaptiveColor) *string { return &c.Light }
	if dark {
		cfg = styles.DarkStyleConfig
		pick = func(c lipgloss.AdaptiveColor) *string { return &c.Dark }
	}
	noMargin := uint(0)
	cfg.Document.Margin = &noMargin

	cfg.Text.Color = pick(colorSurfaceFg)
	cfg.Heading.Color = pick(colorSurfaceFg)
	cfg.H1.Color = pick(colorSurfaceFg)
	cfg.H2.Color = pick(colorSurfaceFg)
	cfg.H3.Color = pick(colorSurfaceFg)
	// Keys and commands in help topics use the brand accent.
	cfg.Code.Color = pick(colorAccent)
	cfg.Link.Color = pick(colorAccent)
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	return cfg
}

// markdownDark follows STUDHUB_TUI_MD_STYLE (light|dark), then the palette
// chosen by applyThemePreference.
func markdownDark() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STUDHUB_TUI_MD_STYLE"))) {
	case "light":
		return false
	case "dark":
		return true
	}
	return lipgloss.HasDarkBackground()
}
