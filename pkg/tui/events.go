package tui

import (
	"time"

	"github.com/go-go-golems/pipemon/pkg/store"
)

// StepsSnapshot is one emission of the monitor store.
type StepsSnapshot struct {
	At    time.Time          `json:"at"`
	Steps []store.StepRecord `json:"steps"`
}

// MonitorStatus describes the monitor engine, not the pipeline.
type MonitorStatus struct {
	At       time.Time `json:"at"`
	Endpoint string    `json:"endpoint"`
	State    string    `json:"state"`
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

type EventLogEntry struct {
	At     time.Time `json:"at"`
	Source string    `json:"source,omitempty"`
	Level  LogLevel  `json:"level,omitempty"`
	Text   string    `json:"text"`
}
