package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/desertthunder/jamx/internal/models"
)

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	record   key.Binding
	generate key.Binding
	stop     key.Binding
	replay   key.Binding
	copy     key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		record:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "record")),
		generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
		stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		replay:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "replay")),
		copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy tempo/key")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// setButtons mirrors the disabled flags onto the action bindings.
func (k *keyMap) setButtons(flags models.ButtonFlags) {
	k.record.SetEnabled(!flags.Record)
	k.generate.SetEnabled(!flags.Generate)
	k.stop.SetEnabled(!flags.Stop)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.record, k.generate, k.stop, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.record, k.generate, k.stop},
		{k.replay, k.copy},
		{k.help, k.quit},
	}
}
