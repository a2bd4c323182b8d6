package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the pipemon palette and the styles the views draw with.
type Theme struct {
	Accent lipgloss.Color
	Text   lipgloss.Color
	Dim    lipgloss.Color
	Faint  lipgloss.Color
	Ok     lipgloss.Color
	Warn   lipgloss.Color
	Fail   lipgloss.Color

	Panel   lipgloss.Style
	Heading lipgloss.Style
	Note    lipgloss.Style
	Brand   lipgloss.Style
	Cursor  lipgloss.Style
	Key     lipgloss.Style
	Cell    lipgloss.Style

	Running lipgloss.Style
	Idle    lipgloss.Style
	Failed  lipgloss.Style
	Queue   lipgloss.Style
}

func DefaultTheme() Theme {
	accent := lipgloss.Color("#0EA5E9")
	text := lipgloss.Color("#F1F5F9")
	dim := lipgloss.Color("#94A3B8")
	faint := lipgloss.Color("#475569")
	ok := lipgloss.Color("#10B981")
	warn := lipgloss.Color("#F59E0B")
	fail := lipgloss.Color("#F43F5E")

	return Theme{
		Accent: accent,
		Text:   text,
		Dim:    dim,
		Faint:  faint,
		Ok:     ok,
		Warn:   warn,
		Fail:   fail,

		Panel:   lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(faint),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(text),
		Note:    lipgloss.NewStyle().Foreground(dim),
		Brand:   lipgloss.NewStyle().Bold(true).Foreground(text).Background(accent).Padding(0, 1),
		Cursor:  lipgloss.NewStyle().Bold(true).Foreground(text).Background(lipgloss.Color("#1E293B")),
		Key:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Cell:    lipgloss.NewStyle().Foreground(dim),

		Running: lipgloss.NewStyle().Foreground(ok),
		Idle:    lipgloss.NewStyle().Foreground(faint),
		Failed:  lipgloss.NewStyle().Foreground(fail),
		Queue:   lipgloss.NewStyle().Bold(true).Foreground(warn),
	}
}

// Health picks the style of a monitor state indicator.
func (t Theme) Health(healthy bool) lipgloss.Style {
	if healthy {
		return t.Running
	}
	return t.Failed
}

// Level picks the style of an event log line.
func (t Theme) Level(level string) lipgloss.Style {
	switch level {
	case "error":
		return t.Failed
	case "warn":
		return lipgloss.NewStyle().Foreground(t.Warn)
	default:
		return t.Note
	}
}
