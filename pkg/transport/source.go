// Package transport connects a monitor to the publish/subscribe system the
// pipeline reports on. Every adapter delivers (topic, payload) frames into a
// single queue read by the monitor engine.
package transport

import (
	"context"
	"sync"
	"time"

	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/pkg/errors"
)

const DefaultBuffer = 1024

var ErrClosed = errors.New("transport closed")

// queue is the monitor.Source shared by all adapters. Subscription callbacks
// push into it; the engine goroutine reads it.
type queue struct {
	frames chan wire.Frame
	done   chan struct{}

	once    sync.Once
	closeFn func() error
}

func newQueue(buffer int) *queue {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &queue{
		frames: make(chan wire.Frame, buffer),
		done:   make(chan struct{}),
	}
}

// push blocks until the frame is queued or the queue is closed.
func (q *queue) push(f wire.Frame) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.frames <- f:
		return true
	case <-q.done:
		return false
	}
}

func (q *queue) Receive(ctx context.Context, timeout time.Duration) (wire.Frame, bool, error) {
	select {
	case f := <-q.frames:
		return f, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case f := <-q.frames:
		return f, true, nil
	case <-timer.C:
		return wire.Frame{}, false, nil
	case <-ctx.Done():
		return wire.Frame{}, false, ctx.Err()
	case <-q.done:
		return wire.Frame{}, false, ErrClosed
	}
}

func (q *queue) Close() error {
	var err error
	q.once.Do(func() {
		close(q.done)
		if q.closeFn != nil {
			err = q.closeFn()
		}
	})
	return err
}

func uniqueTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Publisher sends frames; the demo emitter uses it to play the pipeline side.
type Publisher interface {
	Publish(ctx context.Context, f wire.Frame) error
	Close() error
}
