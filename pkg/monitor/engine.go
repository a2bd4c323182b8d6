package monitor

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"time"

	"github.com/go-go-golems/pipemon/pkg/store"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultPollTimeout = time.Second

// Source yields frames from the transport. Receive blocks for at most
// timeout; ok is false when nothing arrived in time.
type Source interface {
	Receive(ctx context.Context, timeout time.Duration) (frame wire.Frame, ok bool, err error)
	Close() error
}

// Connector binds or connects a Source subscribed to topics.
type Connector interface {
	Connect(ctx context.Context, topics []string) (Source, error)
}

type State string

const (
	StateStarting         State = "starting"
	StateDisabled         State = "disabled"
	StateAwaitingSnapshot State = "awaiting_snapshot"
	StateSynchronized     State = "synchronized"
	StateStopped          State = "stopped"
)

type Options struct {
	Topics        wire.TopicSet
	Delimiters    wire.Delimiters
	PollTimeout   time.Duration
	FrameInterval time.Duration
	Metrics       *Metrics

	// OnStateChange is called from the engine goroutine.
	OnStateChange func(State)

	now func() time.Time
}

type Engine struct {
	connector Connector
	sink      Sink
	opts      Options

	decoder  *wire.Decoder
	store    *store.Store
	throttle *Throttle
	metrics  *Metrics

	// a mutation was held back by the cap and has not been emitted yet
	dirty bool

	stop  atomic.Bool
	state atomic.Value
}

func NewEngine(connector Connector, sink Sink, opts Options) *Engine {
	if opts.Topics == (wire.TopicSet{}) {
		opts.Topics = wire.DefaultTopics()
	}
	if opts.Delimiters == (wire.Delimiters{}) {
		opts.Delimiters = wire.DefaultDelimiters()
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.now == nil {
		opts.now = time.Now
	}

	e := &Engine{
		connector: connector,
		sink:      sink,
		opts:      opts,
		decoder:   wire.NewDecoder(opts.Topics, opts.Delimiters),
		store:     store.New(),
		throttle:  NewThrottle(opts.FrameInterval),
		metrics:   opts.Metrics,
	}
	e.state.Store(StateStarting)
	return e
}

func (e *Engine) State() State {
	return e.state.Load().(State)
}

// Stop asks Run to return. It takes effect at the next loop iteration, at
// most one poll timeout later.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// Run connects the source and processes frames until Stop is called or ctx
// is done. A failed connect is logged once and leaves the engine disabled;
// Run then returns nil.
func (e *Engine) Run(ctx context.Context) error {
	src, err := e.connector.Connect(ctx, e.opts.Topics.All())
	if err != nil {
		e.metrics.TransportFailures.Inc()
		log.Error().Err(err).Msg("transport connect failed; monitor disabled")
		e.setState(StateDisabled)
		return nil
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Warn().Err(err).Msg("close transport")
		}
	}()

	e.setState(StateAwaitingSnapshot)
	defer e.setState(StateStopped)

	for !e.stop.Load() && ctx.Err() == nil {
		frame, ok, err := src.Receive(ctx, e.opts.PollTimeout)
		now := e.opts.now()
		if err != nil {
			if ctx.Err() != nil || e.stop.Load() || stderrors.Is(err, context.Canceled) {
				return nil
			}
			return errors.Wrap(err, "receive")
		}
		if !ok {
			e.idle(ctx, now)
			continue
		}
		e.handle(ctx, frame, now)
	}
	return nil
}

func (e *Engine) handle(ctx context.Context, frame wire.Frame, now time.Time) {
	ev, err := e.decoder.Decode(frame.Topic, frame.Payload)
	if err != nil {
		e.metrics.DecodeErrors.WithLabelValues(frame.Topic).Inc()
		log.Warn().Err(err).Str("topic", frame.Topic).Msg("dropping undecodable message")
		return
	}
	e.metrics.MessagesReceived.WithLabelValues(string(ev.Kind())).Inc()

	if !route(e.store, ev) {
		return
	}
	e.metrics.StoreSize.Set(float64(e.store.Len()))
	e.syncState()

	if e.throttle.Allow(now) {
		e.emit(ctx, emitReasonMutation)
		return
	}
	e.dirty = true
	e.metrics.Suppressed.Inc()
}

// idle runs when a receive timed out. A non-empty store is always emitted;
// an empty one only if a held-back mutation (typically a reset) is pending.
func (e *Engine) idle(ctx context.Context, now time.Time) {
	if e.store.Len() == 0 && !e.dirty {
		return
	}
	e.throttle.Mark(now)
	e.emit(ctx, emitReasonIdle)
}

func (e *Engine) emit(ctx context.Context, reason string) {
	e.dirty = false
	e.metrics.Emissions.WithLabelValues(reason).Inc()
	if at, ok := e.throttle.LastEmit(); ok {
		e.metrics.LastEmit.Set(float64(at.UnixNano()) / 1e9)
	}
	if err := e.sink.Emit(ctx, e.store.Records()); err != nil {
		e.metrics.EmitErrors.Inc()
		log.Warn().Err(err).Str("reason", reason).Msg("emit failed")
	}
}

func (e *Engine) syncState() {
	switch e.store.State() {
	case store.Synchronized:
		e.setState(StateSynchronized)
	default:
		e.setState(StateAwaitingSnapshot)
	}
}

func (e *Engine) setState(s State) {
	prev := e.state.Swap(s)
	if prev == s {
		return
	}
	log.Debug().Str("state", string(s)).Msg("monitor state")
	if e.opts.OnStateChange != nil {
		e.opts.OnStateChange(s)
	}
}
