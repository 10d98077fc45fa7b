package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/michaelssim/soundbuddy/internal/storage"
	"github.com/michaelssim/soundbuddy/internal/tempo"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 20  // Width of the view list sidebar
	maxSessions        = 100 // Max sessions to load
)

// HistorySource is the part of the practice log the history screen reads.
type HistorySource interface {
	RecentSessions(limit int) ([]storage.Session, error)
	TempoStats() ([]storage.TempoStats, error)
}

// HistoryView selects what the history table lists.
type HistoryView int

const (
	HistoryRecent  HistoryView = iota // One row per session, newest first
	HistoryByTempo                    // One row per BPM
)

var historyViews = []struct {
	view  HistoryView
	title string
}{
	{HistoryRecent, "Recent"},
	{HistoryByTempo, "By tempo"},
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextView, k.PrevView, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the practice history screen.
type HistoryModel struct {
	source      HistorySource
	view        int
	sessions    []storage.Session
	stats       []storage.TempoStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates the history screen and loads the practice log.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		source:      source,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *HistoryModel) load() {
	if m.source == nil {
		return
	}
	sessions, err := m.source.RecentSessions(maxSessions)
	if err != nil {
		m.loadErr = err
		return
	}
	stats, err := m.source.TempoStats()
	if err != nil {
		m.loadErr = err
		return
	}
	m.sessions = sessions
	m.stats = stats
}

// ActiveView returns the selected view.
func (m HistoryModel) ActiveView() HistoryView {
	return historyViews[m.view].view
}

func (m *HistoryModel) columns() []table.Column {
	if m.ActiveView() == HistoryByTempo {
		return []table.Column{
			{Title: "BPM", Width: 5},
			{Title: "Marking", Width: 12},
			{Title: "Sessions", Width: 9},
			{Title: "Time", Width: 10},
		}
	}
	return []table.Column{
		{Title: "Date", Width: 13},
		{Title: "BPM", Width: 5},
		{Title: "Marking", Width: 12},
		{Title: "Time", Width: 10},
		{Title: "Beats", Width: 7},
	}
}

// createTable creates a new table with columns for the active view.
func (m *HistoryModel) createTable() table.Model {
	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Rows returns the table rows of the active view.
func (m HistoryModel) Rows() []table.Row {
	if m.ActiveView() == HistoryByTempo {
		rows := make([]table.Row, len(m.stats))
		for i, st := range m.stats {
			rows[i] = table.Row{
				fmt.Sprintf("%d", st.BPM),
				tempo.Classify(st.BPM).String(),
				fmt.Sprintf("%d", st.Sessions),
				st.Total.Round(time.Second).String(),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			s.StartedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d", s.BPM),
			tempo.Classify(s.BPM).String(),
			s.Duration().Round(time.Second).String(),
			fmt.Sprintf("%d", s.Pulses),
		}
	}
	return rows
}

func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(m.Rows())
	m.table.GotoTop()
}

func (m *HistoryModel) switchView(delta int) {
	m.view = (m.view + delta + len(historyViews)) % len(historyViews)
	m.table = m.createTable()
	m.updateTableRows()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.switchView(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.switchView(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "PRACTICE - " + strings.ToUpper(historyViews[m.view].title)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", m.renderTable()))
	} else {
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range historyViews {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.view {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.title))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTable renders the table, the load error, or the empty message.
func (m HistoryModel) renderTable() string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return tableStyle.Render(emptyStyle.Render("Cannot read practice log:\n" + m.loadErr.Error()))
	case len(m.sessions) == 0:
		return tableStyle.Render(emptyStyle.Render("No sessions recorded yet.\nStart the metronome to log practice!"))
	}
	return tableStyle.Render(m.table.View())
}

// IsQuitting returns true if the user left the screen.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the practice history screen.
func RunHistory(source HistorySource, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
