package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/riyaagrawal02/clivra/internal/readiness"
	"github.com/riyaagrawal02/clivra/internal/study"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// SessionColor returns the accent color for a session type.
func SessionColor(t study.SessionType) color.Color {
	switch t {
	case study.SessionRevision:
		return Accent
	case study.SessionRecall:
		return Secondary
	default:
		return Primary
	}
}

// StatusStyle returns the style a readiness status is rendered in.
func StatusStyle(s readiness.Status) lipgloss.Style {
	switch s {
	case readiness.StatusExamReady:
		return Good
	case readiness.StatusAlmostReady:
		return lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	case readiness.StatusImproving:
		return Warn
	default:
		return Bad
	}
}

// SubjectColor parses a subject's display color, falling back to Text when
// it is unset.
func SubjectColor(hex string) color.Color {
	if hex == "" {
		return Text
	}
	return lipgloss.Color(hex)
}
