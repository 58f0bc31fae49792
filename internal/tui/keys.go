package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Drawer    key.Binding
	Support   key.Binding
	Account   key.Binding
	Reload    key.Binding

	Up     key.Binding
	Down   key.Binding
	Submit key.Binding
	Back   key.Binding

	Focus        key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	NextLocation key.Binding
	PrevLocation key.Binding
	MinDown      key.Binding
	MinUp        key.Binding
	MaxDown      key.Binding
	MaxUp        key.Binding
	Rating       key.Binding
	PillLeft     key.Binding
	PillRight    key.Binding
	RemovePill   key.Binding
	ClearAll     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "выход")),
		Drawer:    key.NewBinding(key.WithKeys("tab", "ctrl+n"), key.WithHelp("tab", "меню")),
		Support:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "поддержка")),
		Account:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "вход/выход")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "обновить")),

		Up:     key.NewBinding(key.WithKeys("up", "k", "ctrl+p")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Submit: key.NewBinding(key.WithKeys("enter")),
		Back:   key.NewBinding(key.WithKeys("esc", "ctrl+g")),

		Focus:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "поиск")),
		NextCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c/C", "категория")),
		PrevCategory: key.NewBinding(key.WithKeys("C")),
		NextLocation: key.NewBinding(key.WithKeys("l"), key.WithHelp("l/L", "школа")),
		PrevLocation: key.NewBinding(key.WithKeys("L")),
		MinDown:      key.NewBinding(key.WithKeys("["), key.WithHelp("[ ]", "цена от")),
		MinUp:        key.NewBinding(key.WithKeys("]")),
		MaxDown:      key.NewBinding(key.WithKeys("{"), key.WithHelp("{ }", "цена до")),
		MaxUp:        key.NewBinding(key.WithKeys("}")),
		Rating:       key.NewBinding(key.WithKeys("0", "3", "4", "5"), key.WithHelp("0/3/4/5", "рейтинг")),
		PillLeft:     key.NewBinding(key.WithKeys("left")),
		PillRight:    key.NewBinding(key.WithKeys("right")),
		RemovePill:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "убрать фильтр")),
		ClearAll:     key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "сбросить")),
	}
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += "  "
		}
		out += h.Key + ": " + h.Desc
	}
	return out
}
