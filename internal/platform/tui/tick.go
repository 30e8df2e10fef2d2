// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 60

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// frameInterval returns the time between ticks, falling back to the
// default rate for non-positive values.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
