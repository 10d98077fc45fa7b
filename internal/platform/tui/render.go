package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/michaelssim/soundbuddy/internal/control"
)

// Styles groups the lipgloss styles of the metronome screen.
type Styles struct {
	Number  lipgloss.Style
	Caption lipgloss.Style
	Tempo   lipgloss.Style
	BeatOn  lipgloss.Style
	BeatOff lipgloss.Style
	Button  lipgloss.Style
	Primary lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default theme.
func DefaultStyles() Styles {
	accent := lipgloss.Color("208")
	return Styles{
		Number:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		Caption: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Tempo:   lipgloss.NewStyle().Foreground(accent).Bold(true).Italic(true),
		BeatOn:  lipgloss.NewStyle().Foreground(accent),
		BeatOff: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2),
		Primary: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(accent).
			Bold(true).
			Padding(0, 3),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// bigDigits is a 3x5 block font for the BPM readout.
var bigDigits = map[rune][5]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" █ ", "██ ", " █ ", " █ ", "███"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
}

// BigNumber renders n in the block font, one string per row.
func BigNumber(n int) string {
	digits := strconv.Itoa(n)
	rows := make([]string, 5)
	for i := range rows {
		parts := make([]string, 0, len(digits))
		for _, d := range digits {
			glyph, ok := bigDigits[d]
			if !ok {
				glyph = [5]string{"   ", "   ", "   ", "   ", "   "}
			}
			parts = append(parts, glyph[i])
		}
		rows[i] = strings.Join(parts, " ")
	}
	return strings.Join(rows, "\n")
}

// beatIndicator draws one dot per beat of a 4/4 bar, lighting the current one.
func beatIndicator(s Styles, seq int64, lit bool) string {
	const beatsPerBar = 4
	current := -1
	if seq > 0 {
		current = int((seq - 1) % beatsPerBar)
	}

	dots := make([]string, beatsPerBar)
	for i := range dots {
		if lit && i == current {
			dots[i] = s.BeatOn.Render("●")
		} else {
			dots[i] = s.BeatOff.Render("○")
		}
	}
	return strings.Join(dots, "  ")
}

// controls renders the [-] [▶/■] [+] row.
func controls(s Styles, label string) string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.Button.Render("-"),
		"  ",
		s.Primary.Render(label),
		"  ",
		s.Button.Render("+"),
	)
}

// toggleLabel spells the glyph for readers of the status line.
func toggleLabel(label string) string {
	if label == control.LabelStop {
		return "running"
	}
	return "stopped"
}
