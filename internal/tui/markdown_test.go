package tui

import (
	"strings"
	"testing"
)

func TestMarkdownDark_EnvOverride(t *testing.T) {
	t.Setenv("STUDHUB_TUI_MD_STYLE", "light")
	if markdownDark() {
		t.Fatalf("expected light palette")
	}
	t.Setenv("STUDHUB_TUI_MD_STYLE", "DARK")
	if !markdownDark() {
		t.Fatalf("expected dark palette")
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Setenv("STUDHUB_TUI_MD_STYLE", "dark")

	if got := renderMarkdown("   ", 40); got != "" {
		t.Fatalf("blank markdown should render empty; got %q", got)
	}
	got := renderMarkdown("Замена **экрана** и батареи", 40)
	if !strings.Contains(got, "экрана") || strings.Contains(got, "**") {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestMarkdownRenderers_CachedPerWidth(t *testing.T) {
	a, err := markdownRenderers.get(mdKey{dark: true, width: 33})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := markdownRenderers.get(mdKey{dark: true, width: 33})
	c, _ := markdownRenderers.get(mdKey{dark: true, width: 34})
	if a != b || a == c {
		t.Fatalf("expected one renderer per width")
	}
}
