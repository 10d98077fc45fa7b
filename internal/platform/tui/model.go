package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/michaelssim/soundbuddy/internal/control"
	"github.com/michaelssim/soundbuddy/internal/engine"
)

// Defaults for ModelConfig.
const (
	DefaultStep  = 10
	DefaultFlash = 90 * time.Millisecond
)

// ModelConfig holds presentation settings.
type ModelConfig struct {
	Width  int
	Height int

	// Step is the BPM jump for the coarse keys.
	Step int

	// Flash is how long the beat indicator stays lit.
	Flash time.Duration
}

// Model is the Bubble Tea model for the metronome screen.
type Model struct {
	ctrl   *control.Controller
	events <-chan engine.PulseEvent
	config ModelConfig
	keys   KeyMap
	help   help.Model
	styles Styles

	seq      int64
	lit      bool
	quitting bool
}

// NewModel creates the metronome screen for ctrl. events is the engine's
// pulse stream; nil disables the beat indicator.
func NewModel(ctrl *control.Controller, events <-chan engine.PulseEvent, cfg ModelConfig) Model {
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.Flash <= 0 {
		cfg.Flash = DefaultFlash
	}

	h := help.New()
	h.Width = cfg.Width

	return Model{
		ctrl:   ctrl,
		events: events,
		config: cfg,
		keys:   DefaultKeyMap(cfg.Step),
		help:   h,
		styles: DefaultStyles(),
	}
}

// Init starts listening for pulses.
func (m Model) Init() tea.Cmd {
	return waitForPulse(m.events)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.Width = msg.Width
		m.config.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case PulseMsg:
		// A beat read before a restart belongs to the old run.
		if !m.ctrl.Running() || msg.BPM != m.ctrl.BPM() {
			return m, waitForPulse(m.events)
		}
		m.seq = msg.Seq
		m.lit = true
		return m, tea.Batch(waitForPulse(m.events), flashOffCmd(msg.Seq, m.config.Flash))

	case flashOffMsg:
		if msg.seq == m.seq {
			m.lit = false
		}
		return m, nil

	case eventsClosedMsg:
		m.events = nil
		m.lit = false
		return m, nil
	}

	return m, nil
}

// handleKey maps keys onto the controller. Controller errors are kept by the
// controller and shown in the view, so they are not handled here.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		//nolint:errcheck // Shutting down regardless
		m.ctrl.Stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Toggle):
		//nolint:errcheck // Surfaced through ctrl.Err
		m.ctrl.Toggle()
		if !m.ctrl.Running() {
			m.lit = false
		}

	case key.Matches(msg, m.keys.Slower):
		//nolint:errcheck // Surfaced through ctrl.Err
		m.ctrl.Nudge(-1)

	case key.Matches(msg, m.keys.Faster):
		//nolint:errcheck // Surfaced through ctrl.Err
		m.ctrl.Nudge(1)

	case key.Matches(msg, m.keys.SlowerStep):
		//nolint:errcheck // Surfaced through ctrl.Err
		m.ctrl.SetBPM(m.ctrl.BPM() - m.config.Step)

	case key.Matches(msg, m.keys.FasterStep):
		//nolint:errcheck // Surfaced through ctrl.Err
		m.ctrl.SetBPM(m.ctrl.BPM() + m.config.Step)
	}

	return m, nil
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.styles
	bpm := m.ctrl.BPM()

	parts := []string{
		s.Number.Render(BigNumber(bpm)),
		s.Caption.Render("bpm"),
		"",
		s.Tempo.Render(strings.ToUpper(m.ctrl.Tempo().String())),
		s.Caption.Render("tempo"),
		"",
		beatIndicator(s, m.seq, m.lit && m.ctrl.Running()),
		"",
		controls(s, m.ctrl.Label()),
		"",
		s.Status.Render(m.statusLine()),
	}
	if err := m.ctrl.Err(); err != nil {
		parts = append(parts, s.Error.Render("error: "+err.Error()))
	}
	parts = append(parts, "", m.help.View(m.keys))

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.config.Width <= 0 || m.config.Height <= 0 {
		return body
	}
	return lipgloss.Place(m.config.Width, m.config.Height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) statusLine() string {
	st := m.ctrl.Status()
	line := toggleLabel(m.ctrl.Label())
	if st.Running() {
		line += fmt.Sprintf(" · %dms · beat %d", st.Period.Milliseconds(), st.Pulses)
		if st.Missed > 0 {
			line += fmt.Sprintf(" · %d silent", st.Missed)
		}
	}
	return line
}

// Run starts the Bubble Tea program for ctrl and blocks until the user quits.
func Run(ctrl *control.Controller, events <-chan engine.PulseEvent, cfg ModelConfig) error {
	model := NewModel(ctrl, events, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
