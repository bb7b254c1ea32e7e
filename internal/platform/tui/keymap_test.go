package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kiosk-idle/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		leave  bool
	}{
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space starts", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"esc leaves", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, true},
		{"b leaves", runeKey('b'), core.ActionBack, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, leave := keys.MapKey(tt.msg)
			if action != tt.action || leave != tt.leave {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), action, leave, tt.action, tt.leave)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	if keys.MapKeyToFrame(runeKey('p'), &frame) {
		t.Fatal("pause should not end the session")
	}
	if !frame.Has(core.ActionPause) {
		t.Error("pause not recorded in frame")
	}

	frame.Clear()
	if !keys.MapKeyToFrame(runeKey('q'), &frame) {
		t.Fatal("quit should end the session")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("leave keys must not reach the game")
	}
}

func TestHelpBindingsHaveHelp(t *testing.T) {
	keys := DefaultKeyMap()
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v has no help text", b.Keys())
			}
		}
	}
}
