package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Filter  key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab/→", "next view")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab/←", "previous view")),
		Filter:  key.NewBinding(key.WithKeys("f", "F"), key.WithHelp("f", "cycle filter")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q", "Q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.Filter},
		{k.Help, k.Quit},
	}
}

var quitKeys = map[string]bool{"q": true, "Q": true}

// timerKeys are the reserved clock characters. They reach the clock from
// every tab once a session exists; while idle only the quit keys do.
// Other characters only reach the clock on the Timer tab.
var timerKeys = map[string]bool{
	" ": true, "space": true,
	"s": true, "S": true,
	"r": true, "R": true,
	"b": true, "B": true,
	"q": true, "Q": true,
}
