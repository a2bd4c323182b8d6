package widgets

import (
	"strings"

	"github.com/go-go-golems/pipemon/pkg/tui/styles"
)

const defaultWidth = 80

// Rule is a full-width horizontal line.
func Rule(width int, theme styles.Theme) string {
	if width <= 0 {
		width = defaultWidth
	}
	return theme.Note.Foreground(theme.Faint).Render(strings.Repeat("━", width))
}
