package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/pipemon/pkg/tui/styles"
)

// TableColumn defines a column in the table.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// TableRow represents a row in the table. Highlight overrides the style of
// the cells at the given column indexes while the row is not selected.
type TableRow struct {
	Icon      string
	Cells     []string
	Highlight map[int]lipgloss.Style
}

// Table renders a styled table with a row cursor.
type Table struct {
	Columns []TableColumn
	Rows    []TableRow
	Cursor  int
	Width   int
	theme   styles.Theme
}

func NewTable(cols []TableColumn) Table {
	return Table{
		Columns: cols,
		Cursor:  -1,
		theme:   styles.DefaultTheme(),
	}
}

func (t Table) WithRows(rows []TableRow) Table {
	t.Rows = rows
	return t
}

// WithCursor sets the selected row index; -1 selects nothing.
func (t Table) WithCursor(idx int) Table {
	t.Cursor = idx
	return t
}

func (t Table) WithWidth(width int) Table {
	t.Width = width
	return t
}

// Render returns the header line followed by one line per row.
func (t Table) Render() string {
	if len(t.Rows) == 0 {
		return t.theme.Note.Render("(no steps)")
	}

	theme := t.theme
	lines := make([]string, 0, len(t.Rows)+1)

	header := []string{"    "}
	for _, col := range t.Columns {
		header = append(header, t.cell(col.Header, col, theme.Note.Bold(true)))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for i, row := range t.Rows {
		isSelected := i == t.Cursor

		cursor := "  "
		if isSelected {
			cursor = theme.Key.Render("> ")
		}
		parts := []string{cursor}

		icon := row.Icon
		if icon == "" {
			icon = " "
		}
		iconStyle := theme.Idle
		switch row.Icon {
		case styles.IconRunning, styles.IconSuccess:
			iconStyle = theme.Running
		case styles.IconError:
			iconStyle = theme.Failed
		}
		parts = append(parts, iconStyle.Render(icon)+" ")

		for j, cell := range row.Cells {
			col := TableColumn{Width: 20}
			if j < len(t.Columns) {
				col = t.Columns[j]
			}
			style := theme.Cell
			if hl, ok := row.Highlight[j]; ok && !isSelected {
				style = hl
			}
			if isSelected {
				style = style.Bold(true).Foreground(theme.Text)
			}
			parts = append(parts, t.cell(cell, col, style))
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		if isSelected {
			line = theme.Cursor.Width(t.Width).Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (t Table) cell(text string, col TableColumn, style lipgloss.Style) string {
	width := col.Width
	if width <= 0 {
		width = 20
	}
	if r := []rune(text); len(r) > width {
		text = string(r[:width-1]) + "…"
	}
	return style.Width(width).Align(col.Align).Render(text)
}
