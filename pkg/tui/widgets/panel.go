package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/pipemon/pkg/tui/styles"
)

// Panel is a bordered view section with a title line. Note is shown right
// aligned on the title line. Width and Height include the border; zero
// leaves the dimension to the content.
type Panel struct {
	Title  string
	Note   string
	Body   string
	Width  int
	Height int
}

func (p Panel) Render() string {
	theme := styles.DefaultTheme()
	inner := max(0, p.Width-2)

	title := theme.Heading.Render(p.Title)
	note := theme.Note.Render(p.Note)
	gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(note))
	head := title + lipgloss.NewStyle().Width(gap).Render("") + note

	style := theme.Panel
	if p.Width > 0 {
		style = style.Width(inner)
	}
	if p.Height > 0 {
		style = style.Height(max(0, p.Height-2))
	}
	return style.Render(head + "\n" + p.Body)
}
