package wire

import (
	"encoding/json"
	"strings"
)

type Kind string

const (
	KindVoid         Kind = "void"
	KindSnapshot     Kind = "snapshot"
	KindStepChange   Kind = "step_change"
	KindRouterChange Kind = "router_change"
	KindSessionEnd   Kind = "session_end"
)

// Event is the closed set of messages a monitor understands. The unexported
// marker keeps other packages from adding variants.
type Event interface {
	Kind() Kind
	isEvent()
}

// Version identifies a snapshot. It is compared by its exact JSON text.
type Version = json.Number

type Step struct {
	Name     string `json:"name"`
	Running  bool   `json:"running"`
	JobsDone int64  `json:"jobs_done"`
}

type Snapshot struct {
	Version Version `json:"version"`
	Steps   []Step  `json:"steps"`
}

// StepChange reports a status change of one processing unit of a step.
// Name is the step key, resolved from TaggedName by the decoder.
type StepChange struct {
	TaggedName string `json:"name"`
	Running    bool   `json:"running"`
	JobsDone   int64  `json:"jobs_done"`

	Name string `json:"-"`
}

type RouterChange struct {
	TaggedName  string `json:"name"`
	QueueLength int64  `json:"queue_length"`

	Name string `json:"-"`
}

type SessionEnd struct{}

// Void stands in for a message on a label nobody handles.
type Void struct {
	Topic string
}

func (Snapshot) Kind() Kind     { return KindSnapshot }
func (StepChange) Kind() Kind   { return KindStepChange }
func (RouterChange) Kind() Kind { return KindRouterChange }
func (SessionEnd) Kind() Kind   { return KindSessionEnd }
func (Void) Kind() Kind         { return KindVoid }

func (Snapshot) isEvent()     {}
func (StepChange) isEvent()   {}
func (RouterChange) isEvent() {}
func (SessionEnd) isEvent()   {}
func (Void) isEvent()         {}

// StripSuffix returns the part of name before the first delimiter.
func StripSuffix(name, delimiter string) string {
	if delimiter == "" {
		return name
	}
	if i := strings.Index(name, delimiter); i >= 0 {
		return name[:i]
	}
	return name
}
