package tui

import (
	"context"
	"strconv"
	"strings"

	"studhub/internal/config"
	"studhub/internal/counter"
	"studhub/internal/filter"
	"studhub/internal/model"
	"studhub/internal/session"
	"studhub/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalQuickView
	modalSupport
	modalLogin
)

type statsMsg struct {
	stats model.Stats
	err   error
}

type appModel struct {
	store store.Store
	cfg   config.Config
	log   *zap.Logger
	keys  keyMap

	ui      *store.UIState
	session *session.Controller
	ctx     session.Context

	width  int
	height int

	drawerOpen bool
	drawerIdx  int

	modal      modalKind
	quickView  model.Listing
	loginInput textinput.Model
	loginErr   string

	bar       *searchBar
	input     textinput.Model
	results   list.Model
	total     int
	pill      int
	searchSeq int

	stats     model.Stats
	counters  counter.Set
	animating bool

	status string
}

func newAppModel(opts Options) (appModel, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.Config
	if cfg.UI.PageSize <= 0 {
		cfg = config.Default(opts.Store.Dir)
	}

	ui, err := opts.Store.LoadUIState()
	if err != nil {
		return appModel{}, err
	}

	override := strings.TrimSpace(opts.User)
	user := ui.LoggedInUser
	if override != "" {
		user = override
	}
	sess := session.NewController()
	sess.Restore(user, ui.LastPage)
	s := opts.Store
	sess.OnChange(func(c session.Context) {
		if override == "" || c.UserName() != override {
			ui.LoggedInUser = c.UserName()
		}
		ui.LastPage = string(c.CurrentPage)
		if err := s.SaveUIState(ui); err != nil {
			log.Warn("save ui state", zap.Error(err))
		}
	})

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "ноутбук, репетитор, ремонт…"
	input.CharLimit = 120

	login := textinput.New()
	login.Prompt = "> "
	login.Placeholder = "Имя"
	login.CharLimit = 60

	m := appModel{
		store:      s,
		cfg:        cfg,
		log:        log,
		keys:       defaultKeyMap(),
		ui:         ui,
		session:    sess,
		ctx:        sess.Snapshot(),
		drawerOpen: ui.DrawerPinned,
		loginInput: login,
		bar:        newSearchBar(log),
		input:      input,
		results:    newResultsList(),
		searchSeq:  1,
	}
	return m, nil
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{loadStatsCmd(m.store)}
	if isListingPage(m.ctx.CurrentPage) {
		cmds = append(cmds, searchCmd(m.store, m.searchSeq, m.pageFilters(), m.pageScope()))
	}
	return tea.Batch(cmds...)
}

func loadStatsCmd(s store.Store) tea.Cmd {
	return func() tea.Msg {
		st, err := s.Stats(context.Background())
		return statsMsg{stats: st, err: err}
	}
}

func isListingPage(p session.Page) bool {
	return p == session.PageSearch || p == session.PageServices || p == session.PageProfile
}

func isSearchPage(p session.Page) bool {
	return p == session.PageSearch || p == session.PageServices
}

// pageScope narrows the catalog to what the current page shows.
func (m appModel) pageScope() store.Page {
	p := store.Page{Limit: m.cfg.UI.PageSize}
	switch m.ctx.CurrentPage {
	case session.PageSearch:
		p.Kind = model.ListingKindRental
	case session.PageServices:
		p.Kind = model.ListingKindService
	case session.PageProfile:
		p.Seller = m.ctx.UserName()
	}
	return p
}

// pageFilters: the profile page lists the user's own listings unfiltered.
func (m appModel) pageFilters() filter.State {
	if m.ctx.CurrentPage == session.PageProfile {
		return filter.NewState()
	}
	return m.bar.filters.State()
}

func (m *appModel) runSearch(st filter.State) tea.Cmd {
	m.searchSeq++
	return searchCmd(m.store, m.searchSeq, st, m.pageScope())
}

// triggerSearch is the search bar's "apply": it goes through the filter
// manager so the callback sees exactly the current query and filters.
func (m *appModel) triggerSearch() tea.Cmd {
	req, ok := m.bar.search()
	if !ok {
		return nil
	}
	return m.runSearch(req.Filters)
}

func (m *appModel) reloadPage() tea.Cmd {
	if !isListingPage(m.ctx.CurrentPage) {
		return nil
	}
	return m.runSearch(m.pageFilters())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case statsMsg:
		if msg.err != nil {
			m.log.Warn("load stats", zap.Error(msg.err))
			m.status = "Не удалось загрузить статистику"
			return m, nil
		}
		m.stats = msg.stats
		m.counters = statCounters(msg.stats, m.counters, m.cfg.UI.CounterSteps)
		if m.animating {
			return m, nil
		}
		m.animating = true
		return m, counter.TickCmd(counter.DefaultInterval)

	case counter.TickMsg:
		m.counters, m.animating = m.counters.Step()
		if m.animating {
			return m, counter.TickCmd(counter.DefaultInterval)
		}
		return m, nil

	case searchResultMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.log.Error("search", zap.Error(msg.err))
			m.status = "Ошибка поиска: " + msg.err.Error()
			return m, nil
		}
		m.total = msg.res.Total
		cmd := m.results.SetItems(listingItems(msg.res.Listings))
		m.results.ResetSelected()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if m.modal == modalLogin {
		var cmd tea.Cmd
		m.loginInput, cmd = m.loginInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.modal != modalNone {
		return m.updateModal(msg)
	}
	if m.input.Focused() {
		return m.updateInput(msg)
	}
	if m.drawerOpen && !key.Matches(msg, m.keys.Drawer) {
		if handled, cmd := m.updateDrawer(msg); handled {
			return m, cmd
		}
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Drawer):
		m.toggleDrawer()
		return m, nil
	case key.Matches(msg, m.keys.Support):
		m.openSupport()
		return m, nil
	case key.Matches(msg, m.keys.Account):
		if m.ctx.LoggedIn {
			cmd := m.logout()
			return m, cmd
		}
		cmd := m.openLogin()
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(loadStatsCmd(m.store), m.reloadPage())
	}

	switch m.ctx.CurrentPage {
	case session.PageSearch, session.PageServices:
		return m.updateSearchPage(msg)
	case session.PageProfile:
		return m.updateResults(msg)
	default:
		if key.Matches(msg, m.keys.Submit) {
			cmd := m.navigate(session.PageSearch)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.bar.filters.SetQuery(m.input.Value())
		m.input.Blur()
		cmd := m.triggerSearch()
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.bar.filters.SetQuery(m.input.Value())
	return m, cmd
}

func (m appModel) updateSearchPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fm := m.bar.filters
	st := fm.State()

	switch {
	case key.Matches(msg, m.keys.Focus):
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextCategory):
		fm.SetCategory(cycleOption(filter.Categories(), st.Category, 1))
	case key.Matches(msg, m.keys.PrevCategory):
		fm.SetCategory(cycleOption(filter.Categories(), st.Category, -1))
	case key.Matches(msg, m.keys.NextLocation):
		fm.SetLocation(cycleOption(filter.Locations(), st.Location, 1))
	case key.Matches(msg, m.keys.PrevLocation):
		fm.SetLocation(cycleOption(filter.Locations(), st.Location, -1))
	case key.Matches(msg, m.keys.MinDown):
		fm.SetPriceRange(stepPrice(st.Price, -priceStep, 0))
	case key.Matches(msg, m.keys.MinUp):
		fm.SetPriceRange(stepPrice(st.Price, priceStep, 0))
	case key.Matches(msg, m.keys.MaxDown):
		fm.SetPriceRange(stepPrice(st.Price, 0, -priceStep))
	case key.Matches(msg, m.keys.MaxUp):
		fm.SetPriceRange(stepPrice(st.Price, 0, priceStep))
	case key.Matches(msg, m.keys.Rating):
		r, _ := strconv.Atoi(msg.String())
		if _, err := fm.SetRating(r); err != nil {
			m.log.Warn("set rating", zap.Error(err))
			return m, nil
		}
	case key.Matches(msg, m.keys.PillLeft):
		if m.pill > 0 {
			m.pill--
		}
		return m, nil
	case key.Matches(msg, m.keys.PillRight):
		if m.pill < len(fm.Labels())-1 {
			m.pill++
		}
		return m, nil
	case key.Matches(msg, m.keys.RemovePill):
		labels := fm.Labels()
		if len(labels) == 0 {
			return m, nil
		}
		fm.Remove(labels[clamp(m.pill, 0, len(labels)-1)])
	case key.Matches(msg, m.keys.ClearAll):
		fm.ClearAll()
	default:
		return m.updateResults(msg)
	}

	m.clampPill()
	// The pill rows may have grown or shrunk.
	m.resize()
	cmd := m.triggerSearch()
	return m, cmd
}

func (m *appModel) clampPill() {
	n := len(m.bar.filters.Labels())
	if n == 0 {
		m.pill = 0
		return
	}
	m.pill = clamp(m.pill, 0, n-1)
}

func (m appModel) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		if it, ok := m.results.SelectedItem().(listingItem); ok {
			m.quickView = it.listing
			m.modal = modalQuickView
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *appModel) navigate(p session.Page) tea.Cmd {
	prev := m.ctx.CurrentPage
	m.ctx = m.session.Navigate(p)
	if p == session.PageProfile && m.ctx.CurrentPage != session.PageProfile {
		m.status = "Войдите, чтобы открыть профиль (u)"
	}
	if m.ctx.CurrentPage == prev {
		return nil
	}
	m.input.Blur()
	m.total = 0
	m.results.SetItems(nil)
	m.resize()
	return m.reloadPage()
}

func (m *appModel) toggleDrawer() {
	m.drawerOpen = !m.drawerOpen
	if m.drawerOpen {
		for i, p := range session.Pages {
			if p == m.ctx.CurrentPage {
				m.drawerIdx = i
			}
		}
	}
	m.ui.DrawerPinned = m.drawerOpen
	m.saveUI()
	m.resize()
}

// drawerEntries is the pages plus one account entry.
func (m appModel) drawerEntries() int { return len(session.Pages) + 1 }

func (m *appModel) updateDrawer(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.drawerIdx > 0 {
			m.drawerIdx--
		}
		return true, nil
	case key.Matches(msg, m.keys.Down):
		if m.drawerIdx < m.drawerEntries()-1 {
			m.drawerIdx++
		}
		return true, nil
	case key.Matches(msg, m.keys.Back):
		m.toggleDrawer()
		return true, nil
	case key.Matches(msg, m.keys.Submit):
		if m.drawerIdx < len(session.Pages) {
			return true, m.navigate(session.Pages[m.drawerIdx])
		}
		if m.ctx.LoggedIn {
			return true, m.logout()
		}
		return true, m.openLogin()
	}
	return false, nil
}

func (m *appModel) openSupport() {
	m.modal = modalSupport
	if !m.ui.SupportSeen {
		m.ui.SupportSeen = true
		m.saveUI()
	}
}

func (m *appModel) openLogin() tea.Cmd {
	m.modal = modalLogin
	m.loginErr = ""
	m.loginInput.SetValue("")
	return m.loginInput.Focus()
}

func (m *appModel) logout() tea.Cmd {
	prev := m.ctx.CurrentPage
	m.ctx = m.session.Logout()
	m.status = "Вы вышли из аккаунта"
	if m.ctx.CurrentPage != prev {
		m.total = 0
		m.results.SetItems(nil)
		m.resize()
	}
	return nil
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal == modalLogin {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.loginInput.Blur()
			m.modal = modalNone
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			ctx, err := m.session.Login(m.loginInput.Value())
			if err != nil {
				m.loginErr = "Введите имя"
				return m, nil
			}
			m.ctx = ctx
			m.loginInput.Blur()
			m.modal = modalNone
			m.status = "Добро пожаловать, " + ctx.UserName()
			cmd := m.reloadPage()
			return m, cmd
		}
		var cmd tea.Cmd
		m.loginInput, cmd = m.loginInput.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Back, m.keys.Quit, m.keys.Submit) ||
		(m.modal == modalSupport && key.Matches(msg, m.keys.Support)) {
		m.modal = modalNone
	}
	return m, nil
}

func (m *appModel) saveUI() {
	if err := m.store.SaveUIState(m.ui); err != nil {
		m.log.Warn("save ui state", zap.Error(err))
	}
}

func (m *appModel) resize() {
	w := m.pageWidth()
	h := m.height - 2 - m.pageChromeHeight()
	if h < minPageHeight {
		h = minPageHeight
	}
	m.results.SetSize(w, h)
	m.input.Width = w - 6
}

func (m appModel) pageWidth() int {
	w := m.width
	if m.drawerOpen {
		w -= drawerWidth + 1
	}
	if w < minPageWidth {
		w = minPageWidth
	}
	return w
}

// pageChromeHeight is the number of lines a page draws above its results list.
// On search pages that is the input, a blank line, the filter panel, the pill
// rows, the result count and another blank line.
func (m appModel) pageChromeHeight() int {
	switch m.ctx.CurrentPage {
	case session.PageSearch, session.PageServices:
		return 5 + len(m.viewPills(m.pageWidth()))
	case session.PageProfile:
		return 3
	default:
		return 0
	}
}
