package widgets

import (
	"strings"

	"github.com/go-go-golems/pipemon/pkg/tui/styles"
)

type Key struct {
	Key    string
	Action string
}

// KeyBar renders a rule followed by the key hints of the active view.
func KeyBar(keys []Key, width int) string {
	theme := styles.DefaultTheme()
	return Rule(width, theme) + "\n " + KeyHints(keys, theme)
}

// KeyHints renders keys inline, as "[k] action".
func KeyHints(keys []Key, theme styles.Theme) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, theme.Key.Render("["+k.Key+"]")+" "+theme.Note.Render(k.Action))
	}
	return strings.Join(parts, "  ")
}
