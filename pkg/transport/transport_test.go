package transport

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-go-golems/pipemon/pkg/monitor"
	"github.com/go-go-golems/pipemon/pkg/store"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/stretchr/testify/require"
)

func TestQueue_ReceiveTimesOut(t *testing.T) {
	q := newQueue(1)
	start := time.Now()
	_, ok, err := q.Receive(context.Background(), 20*time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestQueue_DeliversAndCloses(t *testing.T) {
	q := newQueue(2)
	require.True(t, q.push(wire.Frame{Topic: "t", Payload: []byte("x")}))

	f, ok, err := q.Receive(context.Background(), time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "t", f.Topic)

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
	require.False(t, q.push(wire.Frame{Topic: "t"}))

	_, ok, err = q.Receive(context.Background(), time.Second)
	require.ErrorIs(t, err, ErrClosed)
	require.False(t, ok)
}

func TestUniqueTopics(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, uniqueTopics([]string{"a", "", "b", "a"}))
}

func TestWatermill_DropsUnsubscribedLabels(t *testing.T) {
	pubsub := NewInMemoryPubSub()
	defer func() { _ = pubsub.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := (&Watermill{Subscriber: pubsub}).Connect(ctx, []string{wire.DefaultTopicSnapshot, wire.DefaultTopicRouter})
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	pub := &WatermillPublisher{Publisher: pubsub}
	require.NoError(t, pub.Publish(ctx, wire.Frame{Topic: wire.DefaultTopicRouter, Payload: []byte(`{"name":"A_router","queue_length":1}`)}))
	require.NoError(t, pub.Publish(ctx, wire.Frame{Topic: "not-subscribed", Payload: []byte(`{}`)}))

	f, ok, err := src.Receive(ctx, 2*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, wire.DefaultTopicRouter, f.Topic)
	require.JSONEq(t, `{"name":"A_router","queue_length":1}`, string(f.Payload))

	_, ok, err = src.Receive(ctx, 50*time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWatermill_KeepsPublishOrderOnOneLabel(t *testing.T) {
	pubsub := NewInMemoryPubSub()
	defer func() { _ = pubsub.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	src, err := (&Watermill{Subscriber: pubsub}).Connect(ctx, wire.DefaultTopics().All())
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	enc := wire.NewEncoder(wire.DefaultTopics(), wire.DefaultDelimiters())
	dec := wire.NewDecoder(wire.DefaultTopics(), wire.DefaultDelimiters())
	pub := &WatermillPublisher{Publisher: pubsub}

	const n = 300
	for i := 0; i < n; i++ {
		f, err := enc.RouterChange("A", int64(i))
		require.NoError(t, err)
		require.NoError(t, pub.Publish(ctx, f))
	}

	for i := 0; i < n; i++ {
		f, ok, err := src.Receive(ctx, 2*time.Second)
		require.NoError(t, err)
		require.True(t, ok, "frame %d", i)
		ev, err := dec.Decode(f.Topic, f.Payload)
		require.NoError(t, err)
		require.Equal(t, int64(i), ev.(wire.RouterChange).QueueLength)
	}
}

func TestWatermill_KeepsPublishOrderAcrossLabels(t *testing.T) {
	pubsub := NewInMemoryPubSub()
	defer func() { _ = pubsub.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	src, err := (&Watermill{Subscriber: pubsub}).Connect(ctx, wire.DefaultTopics().All())
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	enc := wire.NewEncoder(wire.DefaultTopics(), wire.DefaultDelimiters())
	pub := &WatermillPublisher{Publisher: pubsub}

	var want []string
	for round := 0; round < 50; round++ {
		snap, err := enc.Snapshot(wire.Version(fmt.Sprintf("%d", round)), []wire.Step{{Name: "A"}})
		require.NoError(t, err)
		change, err := enc.StepChange(wire.DefaultTopicStager, "A", "0", true, 0)
		require.NoError(t, err)
		router, err := enc.RouterChange("A", int64(round))
		require.NoError(t, err)
		for _, f := range []wire.Frame{snap, change, router, enc.SessionEnd()} {
			require.NoError(t, pub.Publish(ctx, f))
			want = append(want, f.Topic)
		}
	}

	got := make([]string, 0, len(want))
	for range want {
		f, ok, err := src.Receive(ctx, 2*time.Second)
		require.NoError(t, err)
		require.True(t, ok)
		got = append(got, f.Topic)
	}
	require.Equal(t, want, got)
}

func TestWatermill_MissingSubscriber(t *testing.T) {
	_, err := (&Watermill{}).Connect(context.Background(), []string{"x"})
	require.Error(t, err)
}

func TestNATS_ConnectFailure(t *testing.T) {
	n := &NATS{URL: "nats://127.0.0.1:1", Timeout: 200 * time.Millisecond}
	_, err := n.Connect(context.Background(), wire.DefaultTopics().All())
	require.Error(t, err)

	_, err = NewNATSPublisher(n)
	require.Error(t, err)
}

func TestEngineOverWatermill(t *testing.T) {
	pubsub := NewInMemoryPubSub()
	defer func() { _ = pubsub.Close() }()

	enc := wire.NewEncoder(wire.DefaultTopics(), wire.DefaultDelimiters())
	pub := &WatermillPublisher{Publisher: pubsub}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	f, err := enc.Snapshot("1", []wire.Step{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)
	require.NoError(t, pub.Publish(ctx, f))

	sink := monitor.NewChanSink(8)
	e := monitor.NewEngine(&Watermill{Subscriber: pubsub}, sink, monitor.Options{PollTimeout: 50 * time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	var got []store.StepRecord
	select {
	case got = <-sink.C():
	case <-ctx.Done():
		t.Fatal("no emission")
	}
	require.Equal(t, []store.StepRecord{{Name: "A"}, {Name: "B"}}, got)

	e.Stop()
	require.NoError(t, <-done)
	require.Equal(t, monitor.StateStopped, e.State())
}
