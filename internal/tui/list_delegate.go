package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"studhub/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type listingItem struct {
	listing model.Listing
}

func (i listingItem) Title() string       { return i.listing.Title }
func (i listingItem) Description() string { return i.listing.Location }
func (i listingItem) FilterValue() string { return i.listing.Title }

func formatPrice(p int) string {
	s := strconv.Itoa(p)
	// 10000 -> "10 000 ₸"
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String() + " ₸"
}

func formatRating(r float64) string {
	if r <= 0 {
		return "нет оценок"
	}
	return "★ " + strconv.FormatFloat(r, 'f', 1, 64)
}

// listingDelegate renders one listing per line: title on the left, price,
// rating and school right-aligned.
type listingDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	meta     lipgloss.Style
}

func newListingDelegate() listingDelegate {
	return listingDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		meta: lipgloss.NewStyle().Foreground(colorRating),
	}
}

func (d listingDelegate) Height() int                             { return 1 }
func (d listingDelegate) Spacing() int                            { return 0 }
func (d listingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d listingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}
	it, ok := item.(listingItem)
	if !ok {
		fmt.Fprint(w, fitWidth(fmt.Sprint(item), contentW))
		return
	}

	l := it.listing
	right := fmt.Sprintf("%s  %s  %s", formatPrice(l.Price), formatRating(l.Rating), l.Location)
	marker := "  "
	if l.Kind == model.ListingKindService {
		marker = "✦ "
	}
	leftW := contentW - xansi.StringWidth(right) - 1
	line := right
	if leftW >= 8 {
		line = fitWidth(marker+l.Title, leftW) + " " + right
	}
	line = fitWidth(line, contentW)

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}
	fmt.Fprint(w, style.Render(line))
}

func newResultsList() list.Model {
	l := list.New([]list.Item{}, newListingDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// The search bar owns "/" and the letter keys; the list only moves the cursor.
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	l.KeyMap.PrevPage.SetKeys("pgup")
	l.KeyMap.NextPage.SetKeys("pgdown")
	l.KeyMap.CursorUp.SetKeys("up", "k", "ctrl+p")
	l.KeyMap.CursorDown.SetKeys("down", "j")
	return l
}

func listingItems(ls []model.Listing) []list.Item {
	items := make([]list.Item, 0, len(ls))
	for _, l := range ls {
		items = append(items, listingItem{listing: l})
	}
	return items
}
