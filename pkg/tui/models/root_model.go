package models

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/pipemon/pkg/tui"
	"github.com/go-go-golems/pipemon/pkg/tui/widgets"
)

type ViewID string

const (
	ViewSteps  ViewID = "steps"
	ViewEvents ViewID = "events"
)

type RootModel struct {
	width  int
	height int

	active ViewID
	status tui.MonitorStatus

	steps  StepsModel
	events EventLogModel
}

func NewRootModel(endpoint string) RootModel {
	return RootModel{
		active: ViewSteps,
		status: tui.MonitorStatus{Endpoint: endpoint, State: "starting"},
		steps:  NewStepsModel(),
		events: NewEventLogModel(),
	}
}

func (m RootModel) Init() tea.Cmd { return nil }

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.steps = m.steps.WithWidth(v.Width)
		m.events = m.events.WithSize(v.Width, v.Height-4)
		return m, nil
	case tea.KeyMsg:
		if m.active == ViewEvents && m.events.Searching() {
			var cmd tea.Cmd
			m.events, cmd = m.events.Update(v)
			return m, cmd
		}
		switch v.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.active == ViewSteps {
				m.active = ViewEvents
			} else {
				m.active = ViewSteps
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.active == ViewEvents {
			m.events, cmd = m.events.Update(v)
		} else {
			m.steps, cmd = m.steps.Update(v)
		}
		return m, cmd
	case tui.StepsSnapshotMsg:
		m.steps = m.steps.WithSnapshot(v.Snapshot)
		return m, nil
	case tui.MonitorStatusMsg:
		m.status = v.Status
		return m, nil
	case tui.EventLogAppendMsg:
		m.events = m.events.Append(v.Entry)
		return m, nil
	}
	return m, nil
}

func (m RootModel) View() string {
	steps := m.steps.Steps()
	running := 0
	for _, s := range steps {
		if s.Running {
			running++
		}
	}
	status := widgets.StatusBar{
		State:    m.status.State,
		Endpoint: m.status.Endpoint,
		Steps:    len(steps),
		Running:  running,
		Width:    m.width,
	}.Render()

	body := m.steps.View()
	keys := []widgets.Key{{Key: "tab", Action: "events"}, {Key: "↑/↓", Action: "select step"}, {Key: "q", Action: "quit"}}
	if m.active == ViewEvents {
		body = m.events.View()
		keys = []widgets.Key{{Key: "tab", Action: "steps"}, {Key: "/", Action: "filter"}, {Key: "q", Action: "quit"}}
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, body, widgets.KeyBar(keys, m.width))
}
