package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/pipemon/pkg/tui/styles"
)

// StatusBar is the top line: monitor state, endpoint and step counts.
type StatusBar struct {
	State    string
	Endpoint string
	Steps    int
	Running  int
	Width    int
}

func (s StatusBar) Render() string {
	theme := styles.DefaultTheme()

	icon, healthy := styles.MonitorIcon(s.State)
	status := s.State
	if s.Endpoint != "" {
		status += " @ " + s.Endpoint
	}
	left := lipgloss.JoinHorizontal(lipgloss.Center,
		theme.Brand.Render("pipemon"),
		"  ",
		theme.Health(healthy).Render(icon),
		" ",
		theme.Heading.UnsetBold().Render(status),
	)

	right := ""
	if s.Steps > 0 {
		right = theme.Note.Render(fmt.Sprintf("%d/%d running", s.Running, s.Steps))
	}

	gap := max(1, s.Width-lipgloss.Width(left)-lipgloss.Width(right))
	line := left + lipgloss.NewStyle().Width(gap).Render("") + right
	return line + "\n" + Rule(s.Width, theme)
}
