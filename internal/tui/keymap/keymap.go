// Package keymap provides the widget's key bindings and maps key presses to
// named commands.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	CmdNone       Command = ""
	CmdClap       Command = "clap"
	CmdReset      Command = "reset"
	CmdToggleHelp Command = "toggle_help"
	CmdQuit       Command = "quit"
)

// KeyMap holds the widget's bindings. It implements help.KeyMap.
type KeyMap struct {
	Clap  key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// Default returns the default bindings.
func Default() KeyMap {
	return KeyMap{
		Clap: key.NewBinding(
			key.WithKeys("c", " ", "enter"),
			key.WithHelp("space/c", "clap"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Lookup returns the command bound to msg, or CmdNone.
func (k KeyMap) Lookup(msg tea.KeyMsg) Command {
	switch {
	case key.Matches(msg, k.Clap):
		return CmdClap
	case key.Matches(msg, k.Reset):
		return CmdReset
	case key.Matches(msg, k.Help):
		return CmdToggleHelp
	case key.Matches(msg, k.Quit):
		return CmdQuit
	default:
		return CmdNone
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clap, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Clap, k.Reset},
		{k.Help, k.Quit},
	}
}
