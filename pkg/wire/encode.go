package wire

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Frame is one two-part message as it travels on the transport.
type Frame struct {
	Topic   string
	Payload []byte
}

// Encoder builds frames in the layout Decoder expects. Emitters and tests use
// it; the monitor itself only decodes.
type Encoder struct {
	Topics     TopicSet
	Delimiters Delimiters
}

func NewEncoder(topics TopicSet, delimiters Delimiters) *Encoder {
	return &Encoder{Topics: topics, Delimiters: delimiters}
}

func (e *Encoder) Snapshot(version Version, steps []Step) (Frame, error) {
	if steps == nil {
		steps = []Step{}
	}
	return e.frame(e.Topics.Snapshot, Snapshot{Version: version, Steps: steps})
}

// StepChange tags name with unit after the step delimiter. topic selects the
// producer, stager or consumer label.
func (e *Encoder) StepChange(topic, name, unit string, running bool, jobsDone int64) (Frame, error) {
	return e.frame(topic, StepChange{
		TaggedName: name + e.Delimiters.Step + unit,
		Running:    running,
		JobsDone:   jobsDone,
	})
}

func (e *Encoder) RouterChange(name string, queueLength int64) (Frame, error) {
	return e.frame(e.Topics.Router, RouterChange{
		TaggedName:  name + e.Delimiters.Router,
		QueueLength: queueLength,
	})
}

func (e *Encoder) SessionEnd() Frame {
	return Frame{Topic: e.Topics.Finish}
}

func (e *Encoder) frame(topic string, payload any) (Frame, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, errors.Wrapf(err, "marshal %s payload", topic)
	}
	return Frame{Topic: topic, Payload: b}, nil
}
