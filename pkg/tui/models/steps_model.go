package models

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/pipemon/pkg/store"
	"github.com/go-go-golems/pipemon/pkg/tui"
	"github.com/go-go-golems/pipemon/pkg/tui/styles"
	"github.com/go-go-golems/pipemon/pkg/tui/widgets"
)

const (
	colStatus = 1
	colQueue  = 3
)

var stepColumns = []widgets.TableColumn{
	{Header: "STEP", Width: 28},
	{Header: "STATUS", Width: 10},
	{Header: "JOBS DONE", Width: 12, Align: lipgloss.Right},
	{Header: "QUEUE", Width: 8, Align: lipgloss.Right},
}

// StepsModel shows the latest emitted store as a table.
type StepsModel struct {
	last   *tui.StepsSnapshot
	cursor int
	width  int
}

func NewStepsModel() StepsModel { return StepsModel{} }

func (m StepsModel) WithSnapshot(s tui.StepsSnapshot) StepsModel {
	m.last = &s
	if m.cursor >= len(s.Steps) {
		m.cursor = max(0, len(s.Steps)-1)
	}
	return m
}

func (m StepsModel) WithWidth(w int) StepsModel {
	m.width = w
	return m
}

func (m StepsModel) Steps() []store.StepRecord {
	if m.last == nil {
		return nil
	}
	return m.last.Steps
}

func (m StepsModel) Cursor() int { return m.cursor }

func (m StepsModel) Update(msg tea.Msg) (StepsModel, tea.Cmd) {
	v, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := len(m.Steps())
	switch v.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, n-1)
	}
	return m, nil
}

func (m StepsModel) View() string {
	theme := styles.DefaultTheme()
	if m.last == nil {
		return theme.Note.Render("Waiting for pipeline state...") + "\n"
	}

	steps := m.last.Steps
	running := 0
	queued := int64(0)
	rows := make([]widgets.TableRow, 0, len(steps))
	for _, s := range steps {
		row := widgets.TableRow{Icon: styles.StepIcon(s.Running), Highlight: map[int]lipgloss.Style{}}
		status := "idle"
		if s.Running {
			status = "running"
			running++
			row.Highlight[colStatus] = theme.Running
		}
		queue := "-"
		if s.HasQueueLength {
			queue = strconv.FormatInt(s.QueueLength, 10)
			queued += s.QueueLength
			if s.QueueLength > 0 {
				row.Highlight[colQueue] = theme.Queue
			}
		}
		row.Cells = []string{s.Name, status, strconv.FormatInt(s.JobsDone, 10), queue}
		rows = append(rows, row)
	}

	table := widgets.NewTable(stepColumns).
		WithRows(rows).
		WithCursor(m.cursor).
		WithWidth(m.width)

	title := fmt.Sprintf("Steps (%d running / %d)", running, len(steps))
	note := "updated " + m.last.At.Format("15:04:05.000")
	if queued > 0 {
		note = theme.Queue.Render(fmt.Sprintf("%d queued", queued)) + "  " + note
	}
	return widgets.Panel{
		Title:  title,
		Note:   note,
		Body:   table.Render(),
		Width:  m.width,
		Height: len(rows) + 4,
	}.Render()
}
