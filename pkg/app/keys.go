package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding of the root model. It implements help.KeyMap.
type KeyMap struct {
	Quit    key.Binding
	Submit  key.Binding
	Retry   key.Binding
	Restart key.Binding

	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	First    key.Binding
	Last     key.Binding
	Jump     key.Binding

	Theme  key.Binding
	Music  key.Binding
	VolUp  key.Binding
	VolDn  key.Binding
	Mute   key.Binding
	Share  key.Binding
	Export key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "unwrap")),
		Retry:   key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", "try again")),
		Restart: key.NewBinding(key.WithKeys("R", "esc"), key.WithHelp("R", "restart")),

		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "scroll down")),
		NextPage: key.NewBinding(key.WithKeys("pgdown", "n", " "), key.WithHelp("n/space", "next")),
		PrevPage: key.NewBinding(key.WithKeys("pgup", "p"), key.WithHelp("p", "prev")),
		First:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		Last:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "jump"),
		),

		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Music:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "music")),
		VolUp:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "vol up")),
		VolDn:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "vol down")),
		Mute:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "mute")),
		Share:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "save image")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp is the one-line help shown under the slides.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.PrevPage, k.Theme, k.Music, k.Share, k.Export, k.Help, k.Quit}
}

// FullHelp is the expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.First, k.Last, k.Jump},
		{k.Theme, k.Music, k.VolUp, k.VolDn, k.Mute},
		{k.Share, k.Export, k.Restart, k.Help, k.Quit},
	}
}

// jumpIndex maps a digit key to a slide index: "1" is the first slide and
// "0" the tenth.
func jumpIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	if s[0] == '0' {
		return 9, true
	}
	return int(s[0] - '1'), true
}
