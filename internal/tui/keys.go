package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Refresh     key.Binding
	HardReload  key.Binding
	LoadMore    key.Binding
	AutoRefresh key.Binding
	Reset       key.Binding
	Insert      key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
	Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	HardReload:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	LoadMore:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load more")),
	AutoRefresh: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-refresh")),
	Reset:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
	Insert:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new records")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Refresh, k.HardReload, k.LoadMore, k.AutoRefresh, k.Reset, k.Insert, k.Quit}
}
