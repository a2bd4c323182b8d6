package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/pipemon/pkg/tui"
	"github.com/go-go-golems/pipemon/pkg/tui/styles"
	"github.com/go-go-golems/pipemon/pkg/tui/widgets"
)

const defaultEventLogSize = 200

// EventLogModel lists monitor events (state changes, session resets) with a
// substring filter.
type EventLogModel struct {
	max     int
	entries []tui.EventLogEntry

	width  int
	height int

	searching bool
	search    textinput.Model
	filter    string

	vp viewport.Model
}

func NewEventLogModel() EventLogModel {
	search := textinput.New()
	search.Placeholder = "filter…"
	search.Prompt = "/ "
	search.CharLimit = 200

	return EventLogModel{
		max:    defaultEventLogSize,
		search: search,
		vp:     viewport.New(0, 0),
	}
}

func (m EventLogModel) WithSize(width, height int) EventLogModel {
	m.width, m.height = width, height
	usable := height - 4
	if usable < 3 {
		usable = 3
	}
	m.vp.Width = max(0, width)
	m.vp.Height = usable
	return m.refresh(false)
}

func (m EventLogModel) Update(msg tea.Msg) (EventLogModel, tea.Cmd) {
	v, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch v.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "enter":
			m.filter = strings.TrimSpace(m.search.Value())
			m.searching = false
			m.search.Blur()
			return m.refresh(true), nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(v)
		return m, cmd
	}

	switch v.String() {
	case "/":
		m.searching = true
		m.search.SetValue(m.filter)
		m.search.CursorEnd()
		m.search.Focus()
		return m, nil
	case "ctrl+l":
		m.filter = ""
		m.search.SetValue("")
		return m.refresh(true), nil
	case "c":
		m.entries = nil
		return m.refresh(true), nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(v)
	return m, cmd
}

// Searching reports whether the filter input has focus, in which case keys
// belong to it.
func (m EventLogModel) Searching() bool { return m.searching }

func (m EventLogModel) Append(e tui.EventLogEntry) EventLogModel {
	m.entries = append(m.entries, e)
	if m.max > 0 && len(m.entries) > m.max {
		m.entries = append([]tui.EventLogEntry{}, m.entries[len(m.entries)-m.max:]...)
	}
	return m.refresh(true)
}

func (m EventLogModel) Len() int { return len(m.entries) }

func (m EventLogModel) View() string {
	theme := styles.DefaultTheme()

	titleRight := "[/] filter  [c] clear  [↑/↓] scroll"
	if m.filter != "" {
		titleRight = fmt.Sprintf("filter=%q  %s", m.filter, titleRight)
	}
	title := fmt.Sprintf("Events (%d)", len(m.entries))

	var sections []string
	if m.searching {
		sections = append(sections, m.search.View())
	}

	panel := widgets.Panel{Title: title, Note: titleRight, Width: m.width}
	if len(m.entries) == 0 {
		panel.Body = theme.Note.Render("(no events yet)")
		panel.Height = 5
	} else {
		panel.Body = m.vp.View()
		panel.Height = m.vp.Height + 3
	}
	sections = append(sections, panel.Render())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m EventLogModel) matches(e tui.EventLogEntry) bool {
	if m.filter == "" {
		return true
	}
	return strings.Contains(e.Text, m.filter) || strings.Contains(e.Source, m.filter)
}

func (m EventLogModel) refresh(gotoBottom bool) EventLogModel {
	theme := styles.DefaultTheme()

	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if !m.matches(e) {
			continue
		}
		level := e.Level
		if level == "" {
			level = tui.LogLevelInfo
		}
		source := strings.TrimSpace(e.Source)
		if source == "" {
			source = "monitor"
		}
		ts := e.At
		if ts.IsZero() {
			ts = time.Now()
		}

		style := theme.Level(string(level))

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center,
			style.Render(styles.LogLevelIcon(string(level))),
			" ",
			theme.Note.Render(ts.Format("15:04:05")),
			" ",
			theme.Note.Render(fmt.Sprintf("[%s]", source)),
			"  ",
			style.Render(e.Text),
		))
	}

	if len(lines) == 0 {
		m.vp.SetContent("")
		return m
	}
	m.vp.SetContent(strings.Join(lines, "\n") + "\n")
	if gotoBottom {
		m.vp.GotoBottom()
	}
	return m
}
