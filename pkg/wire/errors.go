package wire

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrMalformedPayload = errors.New("malformed payload")

// DecodeError is returned for a payload that does not match its topic's
// schema. It only concerns that one message.
type DecodeError struct {
	Topic string
	Kind  Kind
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (topic=%q): %v", e.Kind, e.Topic, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedPayload
}
