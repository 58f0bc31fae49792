package tui

import (
	"fmt"
	"strings"

	"studhub/internal/docs"
	"studhub/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func modalWidth(screenW int) int {
	w := screenW - 8
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

func modalBodyWidth(screenW int) int {
	return modalWidth(screenW) - 4
}

// renderModalBox draws title and content in a bordered box on the modal surface.
func renderModalBox(screenW int, title string, content string) string {
	bodyW := modalBodyWidth(screenW)
	head := lipgloss.NewStyle().Bold(true).Width(bodyW).Render(title)
	return lipgloss.NewStyle().
		Width(modalWidth(screenW)).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(head + "\n\n" + content)
}

func (m appModel) viewQuickView() string {
	l := m.quickView
	bodyW := modalBodyWidth(m.width)
	kind := "Аренда"
	if l.Kind == model.ListingKindService {
		kind = "Услуга"
	}
	meta := []string{
		fmt.Sprintf("%s · %s", kind, l.Category),
		fmt.Sprintf("%s · %s", formatPrice(l.Price), formatRating(l.Rating)),
		fmt.Sprintf("%s · продавец: %s", l.Location, l.Seller),
	}
	content := styleMuted().Width(bodyW).Render(strings.Join(meta, "\n"))
	if desc := renderMarkdown(l.Description, bodyW); desc != "" {
		content += "\n\n" + desc
	}
	content += "\n\n" + styleMuted().Render("esc: закрыть")
	return renderModalBox(m.width, l.Title, content)
}

func (m appModel) viewSupport() string {
	bodyW := modalBodyWidth(m.width)
	body, _ := docs.Get("support")
	content := renderMarkdown(body, bodyW)
	content += "\n\n" + styleMuted().Render("esc: закрыть")
	return renderModalBox(m.width, "Помощь", content)
}

func (m appModel) viewLogin() string {
	bodyW := modalBodyWidth(m.width)
	lines := []string{
		renderInputLine(bodyW, m.loginInput.View()),
	}
	if m.loginErr != "" {
		lines = append(lines, "", styleError().Render(m.loginErr))
	}
	lines = append(lines, "", styleMuted().Render("enter: войти  esc: отмена"))
	return renderModalBox(m.width, "Вход", strings.Join(lines, "\n"))
}
