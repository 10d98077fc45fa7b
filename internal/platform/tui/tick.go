// Package tui provides the Bubble Tea presentation layer for the metronome.
// It maps keys to the control package's toggle policy and turns engine pulse
// events into a visual beat.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/michaelssim/soundbuddy/internal/engine"
)

// PulseMsg is sent for every beat the engine fires.
type PulseMsg engine.PulseEvent

// flashOffMsg turns the beat indicator off unless a newer beat lit it.
type flashOffMsg struct {
	seq int64
}

// eventsClosedMsg is sent once the engine's events channel is closed.
type eventsClosedMsg struct{}

// waitForPulse blocks on the next engine event. The model re-issues it after
// each PulseMsg, so exactly one reader is outstanding.
func waitForPulse(events <-chan engine.PulseEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return PulseMsg(ev)
	}
}

// flashOffCmd schedules the end of a beat flash.
func flashOffCmd(seq int64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashOffMsg{seq: seq}
	})
}
