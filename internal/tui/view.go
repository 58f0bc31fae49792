package tui

import (
	"fmt"
	"strings"

	"studhub/internal/filter"
	"studhub/internal/session"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	bodyH := m.height - 2
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.modal {
	case modalQuickView:
		body = placeCentered(m.width, bodyH, m.viewQuickView())
	case modalSupport:
		body = placeCentered(m.width, bodyH, m.viewSupport())
	case modalLogin:
		body = placeCentered(m.width, bodyH, m.viewLogin())
	default:
		pageW := m.pageWidth()
		page := normalizePane(m.viewPage(pageW), pageW, bodyH)
		if m.drawerOpen {
			drawer := normalizePane(m.viewDrawer(), drawerWidth, bodyH)
			sep := normalizePane(strings.Repeat("│\n", bodyH), 1, bodyH)
			body = lipgloss.JoinHorizontal(lipgloss.Top, drawer, styleMuted().Render(sep), page)
		} else {
			body = page
		}
	}

	return strings.Join([]string{
		fitWidth(m.viewHeader(), m.width),
		body,
		fitWidth(m.viewFooter(), m.width),
	}, "\n")
}

func (m appModel) viewHeader() string {
	user := "Гость"
	if m.ctx.LoggedIn {
		user = m.ctx.UserName()
	}
	left := styleBrand().Render("StudHub") + " " + lipgloss.NewStyle().Bold(true).Render(m.ctx.CurrentPage.Title())
	right := styleMuted().Render(user)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) viewFooter() string {
	if m.status != "" {
		return m.status
	}
	k := m.keys
	switch {
	case m.modal != modalNone:
		return styleMuted().Render("esc: закрыть")
	case m.input.Focused():
		return styleMuted().Render("enter: искать  esc: отмена")
	case m.drawerOpen:
		return styleMuted().Render("↑/↓: выбрать  enter: открыть  esc: закрыть меню")
	case isSearchPage(m.ctx.CurrentPage):
		return styleMuted().Render(helpLine(k.Focus, k.NextCategory, k.NextLocation, k.MinDown, k.MaxDown, k.Rating, k.RemovePill, k.ClearAll, k.Drawer, k.Quit))
	default:
		return styleMuted().Render(helpLine(k.Drawer, k.Account, k.Support, k.Reload, k.Quit))
	}
}

func (m appModel) viewDrawer() string {
	lines := []string{styleMuted().Render("Меню"), ""}
	entry := func(i int, label string, current bool) string {
		prefix := "  "
		if current {
			prefix = "• "
		}
		st := lipgloss.NewStyle().Width(drawerWidth)
		if i == m.drawerIdx {
			st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		}
		return st.Render(prefix + label)
	}
	for i, p := range session.Pages {
		lines = append(lines, entry(i, p.Title(), p == m.ctx.CurrentPage))
	}
	account := "Войти"
	if m.ctx.LoggedIn {
		account = "Выйти"
	}
	lines = append(lines, "", entry(len(session.Pages), account, false))
	return strings.Join(lines, "\n")
}

func (m appModel) viewPage(width int) string {
	switch m.ctx.CurrentPage {
	case session.PageSearch, session.PageServices:
		return m.viewSearch(width)
	case session.PageProfile:
		return m.viewProfile()
	default:
		return m.viewHome(width)
	}
}

func (m appModel) viewSearch(width int) string {
	st := m.bar.filters.State()

	input := m.input
	if !input.Focused() && input.Value() == "" {
		input.Placeholder = "нажмите / для поиска"
	}

	category := st.Category
	if !st.CategorySet() {
		category = filter.AllCategories
	}
	location := st.Location
	if !st.LocationSet() {
		location = filter.AllLocations
	}
	rating := "любой"
	if st.RatingSet() {
		rating = filter.RatingLabel(st.Rating)
	}
	panel := fmt.Sprintf("Категория: %s   Школа: %s   Цена: %s   Рейтинг: %s",
		category, location, st.Price.String(), rating)

	lines := []string{
		renderInputLine(width, input.View()),
		"",
		styleMuted().Render(panel),
	}
	lines = append(lines, m.viewPills(width)...)
	lines = append(lines, styleMuted().Render(fmt.Sprintf("Найдено: %d", m.total)), "")
	lines = append(lines, m.results.View())
	return strings.Join(lines, "\n")
}

// viewPills renders the active filter labels; the selected one is highlighted.
// Every label stays on screen: pills wrap onto as many rows as they need.
func (m appModel) viewPills(width int) []string {
	labels := m.bar.filters.Labels()
	if len(labels) == 0 {
		return []string{styleMuted().Render("Фильтры не выбраны")}
	}
	tokens := make([]string, 0, len(labels))
	for i, l := range labels {
		tokens = append(tokens, stylePill(i == m.pill).Render(l.Text+" ×"))
	}
	return wrapTokens(tokens, width, " ")
}

func (m appModel) viewProfile() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(m.ctx.UserName()),
		styleMuted().Render(fmt.Sprintf("Мои объявления: %d", m.total)),
		"",
		m.results.View(),
	}
	return strings.Join(lines, "\n")
}
