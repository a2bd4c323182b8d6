package transport

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	gochannel "github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-go-golems/pipemon/pkg/monitor"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/pkg/errors"
)

const (
	// DefaultWatermillTopic is the single watermill topic every frame travels
	// on. The frame's label rides in LabelMetadataKey.
	DefaultWatermillTopic = "pipemon.frames"
	LabelMetadataKey      = "label"
)

// NewInMemoryPubSub returns a watermill channel pub/sub that keeps published
// messages for subscribers that arrive late. Publish returns only after the
// subscriber acked, so frames arrive in publish order.
func NewInMemoryPubSub() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            DefaultBuffer,
		Persistent:                     true,
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NopLogger{})
}

// Watermill reads frames from any watermill subscriber. All labels share one
// watermill topic so a single subscription sees them in publish order.
type Watermill struct {
	Subscriber message.Subscriber
	Topic      string
	Buffer     int
}

var _ monitor.Connector = (*Watermill)(nil)

func (w *Watermill) Connect(ctx context.Context, topics []string) (monitor.Source, error) {
	if w.Subscriber == nil {
		return nil, errors.New("missing watermill subscriber")
	}
	topic := w.Topic
	if topic == "" {
		topic = DefaultWatermillTopic
	}

	subCtx, cancel := context.WithCancel(ctx)
	q := newQueue(w.Buffer)
	q.closeFn = func() error {
		cancel()
		return nil
	}

	msgs, err := w.Subscriber.Subscribe(subCtx, topic)
	if err != nil {
		_ = q.Close()
		return nil, errors.Wrapf(err, "subscribe %s", topic)
	}

	wanted := map[string]struct{}{}
	for _, label := range uniqueTopics(topics) {
		wanted[label] = struct{}{}
	}
	go func() {
		for msg := range msgs {
			label := msg.Metadata.Get(LabelMetadataKey)
			if _, ok := wanted[label]; !ok {
				msg.Ack()
				continue
			}
			if !q.push(wire.Frame{Topic: label, Payload: msg.Payload}) {
				msg.Nack()
				return
			}
			msg.Ack()
		}
	}()
	return q, nil
}

// WatermillPublisher publishes frames through a watermill publisher, on the
// same single topic Watermill subscribes to.
type WatermillPublisher struct {
	Publisher message.Publisher
	Topic     string
}

func (p *WatermillPublisher) Publish(ctx context.Context, f wire.Frame) error {
	topic := p.Topic
	if topic == "" {
		topic = DefaultWatermillTopic
	}
	msg := message.NewMessage(watermill.NewUUID(), f.Payload)
	msg.Metadata.Set(LabelMetadataKey, f.Topic)
	msg.SetContext(ctx)
	if err := p.Publisher.Publish(topic, msg); err != nil {
		return errors.Wrapf(err, "publish %s", f.Topic)
	}
	return nil
}

// Close is a no-op; the publisher's owner closes it.
func (p *WatermillPublisher) Close() error { return nil }
