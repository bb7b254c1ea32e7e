// Package tui provides the Bubble Tea integration for the idle screen.
// It handles the terminal UI loop, input mapping, score persistence and the
// SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next TickMsg one frame from now.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.FrameDuration(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
