package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/go-go-golems/pipemon/pkg/store"
)

// Publisher is the monitor sink that feeds the TUI through the bus.
type Publisher struct {
	Bus      *Bus
	Endpoint string

	now func() time.Time
}

func NewPublisher(bus *Bus, endpoint string) *Publisher {
	return &Publisher{Bus: bus, Endpoint: endpoint, now: time.Now}
}

func (p *Publisher) Emit(ctx context.Context, steps []store.StepRecord) error {
	return p.Bus.PublishUI(UITypeStepsSnapshot, StepsSnapshot{At: p.now(), Steps: steps})
}

// PublishState reports an engine state change, both for the header and as
// an event log line.
func (p *Publisher) PublishState(state string) error {
	at := p.now()
	if err := p.Bus.PublishUI(UITypeMonitorStatus, MonitorStatus{At: at, Endpoint: p.Endpoint, State: state}); err != nil {
		return err
	}

	level := LogLevelInfo
	text := fmt.Sprintf("monitor: %s", state)
	switch state {
	case "disabled":
		level = LogLevelError
		text = fmt.Sprintf("monitor: disabled (could not bind %s)", p.Endpoint)
	case "awaiting_snapshot":
		text = fmt.Sprintf("monitor: bound to %s, awaiting snapshot", p.Endpoint)
	}
	return p.Bus.PublishUI(UITypeEventAppend, EventLogEntry{At: at, Source: "monitor", Level: level, Text: text})
}
