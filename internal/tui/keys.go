package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Restart key.Binding
	Leave   key.Binding
	Erase   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter/r", "play again"),
		),
		Leave: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "erase"),
		),
	}
}

// practiceHelp lists the bindings shown while typing.
type practiceHelp struct{ keyMap }

func (h practiceHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Erase, h.Quit}
}

func (h practiceHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// scoreHelp lists the bindings shown on the result screen.
type scoreHelp struct{ keyMap }

func (h scoreHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Restart, h.Leave}
}

func (h scoreHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
