package wire

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Decoder turns (topic, payload) frames into events.
type Decoder struct {
	Topics     TopicSet
	Delimiters Delimiters
}

func NewDecoder(topics TopicSet, delimiters Delimiters) *Decoder {
	return &Decoder{Topics: topics, Delimiters: delimiters}
}

// Decode parses one frame. Labels outside the topic set decode to Void with
// a nil error.
func (d *Decoder) Decode(topic string, payload []byte) (Event, error) {
	kind := d.Topics.kind(topic)
	fail := func(err error) (Event, error) {
		return nil, &DecodeError{Topic: topic, Kind: kind, Err: err}
	}

	switch kind {
	case KindSnapshot:
		var ev Snapshot
		if err := unmarshalStrict(payload, &ev); err != nil {
			return fail(err)
		}
		if ev.Version == "" {
			return fail(errors.New("missing version"))
		}
		for i, s := range ev.Steps {
			if s.Name == "" {
				return fail(errors.Errorf("step %d: missing name", i))
			}
		}
		return ev, nil

	case KindStepChange:
		var ev StepChange
		if err := unmarshalStrict(payload, &ev); err != nil {
			return fail(err)
		}
		if ev.TaggedName == "" {
			return fail(errors.New("missing name"))
		}
		ev.Name = StripSuffix(ev.TaggedName, d.Delimiters.Step)
		return ev, nil

	case KindRouterChange:
		var ev RouterChange
		if err := unmarshalStrict(payload, &ev); err != nil {
			return fail(err)
		}
		if ev.TaggedName == "" {
			return fail(errors.New("missing name"))
		}
		ev.Name = StripSuffix(ev.TaggedName, d.Delimiters.Router)
		return ev, nil

	case KindSessionEnd:
		return SessionEnd{}, nil

	default:
		return Void{Topic: topic}, nil
	}
}

func unmarshalStrict(payload []byte, v any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return errors.New("empty payload")
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	if dec.More() {
		return errors.New("trailing data after payload")
	}
	return nil
}
