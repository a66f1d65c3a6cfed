package teaui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the diary UI. Which bindings apply
// depends on the current mode.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	Open    key.Binding
	Back    key.Binding
	Compose key.Binding
	Search  key.Binding
	Sort    key.Binding
	Reload  key.Binding

	Edit    key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Save    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Submit  key.Binding

	Dismiss key.Binding
	SignOut key.Binding
	Help    key.Binding
	Quit    key.Binding
	// ForceQuit works in every mode, including while typing.
	ForceQuit key.Binding
}

// DefaultKeyMap pairs vim-style keys with the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Compose: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new entry"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "dismiss"),
	),
	SignOut: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "log out"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

func (k KeyMap) loginHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Dismiss, k.Back}
}

func (k KeyMap) listHelp(full bool) []key.Binding {
	if !full {
		return []key.Binding{k.Up, k.Down, k.Open, k.Compose, k.Search, k.Sort, k.Help, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Open, k.Compose, k.Search, k.Sort,
		k.Reload, k.Dismiss, k.SignOut, k.Help, k.Quit}
}

func (k KeyMap) searchHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back}
}

func (k KeyMap) formHelp() []key.Binding {
	return []key.Binding{k.Next, k.Save, k.Dismiss, k.Back}
}

func (k KeyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Delete, k.Dismiss, k.Back}
}

func (k KeyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Back}
}
