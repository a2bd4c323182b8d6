package monitor

import (
	"context"

	"github.com/go-go-golems/pipemon/pkg/store"
)

// Sink receives copies of the store. Emit is called from the engine
// goroutine; implementations must not block for long and own the slice they
// are given.
type Sink interface {
	Emit(ctx context.Context, steps []store.StepRecord) error
}

type SinkFunc func(ctx context.Context, steps []store.StepRecord) error

func (f SinkFunc) Emit(ctx context.Context, steps []store.StepRecord) error {
	return f(ctx, steps)
}

// ChanSink delivers emissions over a buffered channel. When the reader falls
// behind the oldest pending emission is dropped, so the reader always gets
// the most recent state.
type ChanSink struct {
	ch chan []store.StepRecord
}

func NewChanSink(buffer int) *ChanSink {
	if buffer < 1 {
		buffer = 1
	}
	return &ChanSink{ch: make(chan []store.StepRecord, buffer)}
}

func (s *ChanSink) C() <-chan []store.StepRecord { return s.ch }

func (s *ChanSink) Emit(ctx context.Context, steps []store.StepRecord) error {
	for {
		select {
		case s.ch <- steps:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// MultiSink fans an emission out to several sinks, each getting its own copy.
type MultiSink []Sink

func (m MultiSink) Emit(ctx context.Context, steps []store.StepRecord) error {
	var firstErr error
	for i, s := range m {
		out := steps
		if i < len(m)-1 {
			out = make([]store.StepRecord, len(steps))
			copy(out, steps)
		}
		if err := s.Emit(ctx, out); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
