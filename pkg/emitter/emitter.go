// Package emitter plays a scripted pipeline run onto a transport, standing
// in for a real pipeline when trying out a monitor.
package emitter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-go-golems/pipemon/pkg/transport"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type role struct {
	name  string
	topic func(wire.TopicSet) string
}

var demoPipeline = []role{
	{"reader", func(t wire.TopicSet) string { return t.Producer }},
	{"calibrate", func(t wire.TopicSet) string { return t.Stager }},
	{"reconstruct", func(t wire.TopicSet) string { return t.Stager }},
	{"writer", func(t wire.TopicSet) string { return t.Consumer }},
}

// Frames builds one session: a snapshot per round, with every step starting,
// queueing and finishing one job in between, and a final session end.
func Frames(enc *wire.Encoder, session, rounds int) ([]wire.Frame, error) {
	jobs := make([]int64, len(demoPipeline))
	var out []wire.Frame

	snapshot := func(round int) error {
		steps := make([]wire.Step, len(demoPipeline))
		for i, r := range demoPipeline {
			steps[i] = wire.Step{Name: r.name, JobsDone: jobs[i]}
		}
		f, err := enc.Snapshot(wire.Version(fmt.Sprintf("%d.%d", session, round)), steps)
		if err != nil {
			return err
		}
		out = append(out, f)
		return nil
	}

	for round := 0; round < rounds; round++ {
		if err := snapshot(round); err != nil {
			return nil, err
		}
		for i, r := range demoPipeline {
			unit := fmt.Sprintf("%d", round%2)
			topic := r.topic(enc.Topics)

			start, err := enc.StepChange(topic, r.name, unit, true, jobs[i])
			if err != nil {
				return nil, err
			}
			queue, err := enc.RouterChange(r.name, int64(len(demoPipeline)-i+round%3))
			if err != nil {
				return nil, err
			}
			jobs[i]++
			stop, err := enc.StepChange(topic, r.name, unit, false, jobs[i])
			if err != nil {
				return nil, err
			}
			out = append(out, start, queue, stop)
		}
	}
	if err := snapshot(rounds); err != nil {
		return nil, err
	}
	out = append(out, enc.SessionEnd())
	return out, nil
}

// Play publishes frames with interval between them.
func Play(ctx context.Context, pub transport.Publisher, frames []wire.Frame, interval time.Duration) error {
	t := time.NewTicker(max(interval, time.Millisecond))
	defer t.Stop()

	for i, f := range frames {
		if err := pub.Publish(ctx, f); err != nil {
			return errors.Wrapf(err, "publish frame %d", i)
		}
		log.Debug().Str("topic", f.Topic).Int("frame", i).Msg("emitted")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

// Run plays sessions sessions back to back; sessions <= 0 loops until ctx
// is done.
func Run(ctx context.Context, pub transport.Publisher, enc *wire.Encoder, sessions, rounds int, interval time.Duration) error {
	for session := 1; sessions <= 0 || session <= sessions; session++ {
		frames, err := Frames(enc, session, rounds)
		if err != nil {
			return err
		}
		log.Info().Int("session", session).Int("frames", len(frames)).Msg("playing demo session")
		if err := Play(ctx, pub, frames, interval); err != nil {
			return err
		}
	}
	return nil
}
