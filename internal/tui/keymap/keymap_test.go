package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyMap_Lookup(t *testing.T) {
	km := Default()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Command
	}{
		{"c claps", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}, CmdClap},
		{"space claps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, CmdClap},
		{"enter claps", tea.KeyMsg{Type: tea.KeyEnter}, CmdClap},
		{"r resets", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, CmdReset},
		{"? toggles help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, CmdToggleHelp},
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, CmdQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit},
		{"unbound key", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, CmdNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Lookup(tt.msg); got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := Default()
	if got := len(km.ShortHelp()); got != 4 {
		t.Errorf("ShortHelp() has %d bindings, want 4", got)
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total != 4 {
		t.Errorf("FullHelp() has %d bindings, want 4", total)
	}
}
