package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nhath/askdb/internal/config"
)

type keyMap struct {
	Submit      key.Binding
	Quit        key.Binding
	ToggleMode  key.Binding
	ToggleSaved key.Binding
	FocusSaved  key.Binding
	RunSaved    key.Binding
	DeleteSaved key.Binding
	Up          key.Binding
	Down        key.Binding
	Dismiss     key.Binding
	Cancel      key.Binding
	Help        key.Binding
}

func binding(keys []string, fallback []string, desc string) key.Binding {
	if len(keys) == 0 {
		keys = fallback
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
}

func newKeyMap(km config.KeyMap) keyMap {
	d := config.DefaultKeys()
	return keyMap{
		Submit:      binding(km.Submit, d.Submit, "ask"),
		Quit:        binding(km.Exit, d.Exit, "quit"),
		ToggleMode:  binding(km.ToggleMode, d.ToggleMode, "mode"),
		ToggleSaved: binding(km.ToggleSaved, d.ToggleSaved, "saved panel"),
		FocusSaved:  binding(km.FocusSaved, d.FocusSaved, "focus saved"),
		RunSaved:    binding(km.RunSaved, d.RunSaved, "run saved"),
		DeleteSaved: binding(km.DeleteSaved, d.DeleteSaved, "delete saved"),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Dismiss:     binding(km.Dismiss, d.Dismiss, "dismiss"),
		Cancel:      binding(km.Cancel, d.Cancel, "cancel requests"),
		Help:        binding(km.Help, d.Help, "help"),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleMode, k.ToggleSaved, k.FocusSaved, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.ToggleMode, k.Cancel, k.Dismiss},
		{k.ToggleSaved, k.FocusSaved, k.RunSaved, k.DeleteSaved, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// savedHelp is the footer shown while the saved panel has focus
func (k keyMap) savedHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.RunSaved, k.DeleteSaved, k.FocusSaved, k.Quit}
}
