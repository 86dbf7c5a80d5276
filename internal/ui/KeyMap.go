package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Move    key.Binding // help only
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Move:    key.NewBinding(key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"), key.WithHelp("arrows/wasd", "move")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Pause, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pause, k.Restart, k.Quit},
	}
}
