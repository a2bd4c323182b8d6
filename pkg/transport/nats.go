package transport

import (
	"context"
	"time"

	"github.com/go-go-golems/pipemon/pkg/monitor"
	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultNATSURL = nats.DefaultURL

// NATS subscribes to one subject per topic label on a NATS server.
type NATS struct {
	URL     string
	Name    string
	Timeout time.Duration
	Buffer  int
	Options []nats.Option
}

var _ monitor.Connector = (*NATS)(nil)

func (n *NATS) dial() (*nats.Conn, error) {
	url := n.URL
	if url == "" {
		url = DefaultNATSURL
	}
	name := n.Name
	if name == "" {
		name = "pipemon"
	}
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(timeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Str("endpoint", url).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("endpoint", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	}
	opts = append(opts, n.Options...)

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connect nats %s", url)
	}
	return nc, nil
}

func (n *NATS) Connect(ctx context.Context, topics []string) (monitor.Source, error) {
	nc, err := n.dial()
	if err != nil {
		return nil, err
	}

	q := newQueue(n.Buffer)
	q.closeFn = func() error {
		nc.Close()
		return nil
	}

	// one channel for every subject keeps the server's delivery order across
	// topics; a full channel makes nats drop messages as a slow consumer
	msgs := make(chan *nats.Msg, cap(q.frames))
	for _, topic := range uniqueTopics(topics) {
		if _, err := nc.ChanSubscribe(topic, msgs); err != nil {
			_ = q.Close()
			return nil, errors.Wrapf(err, "subscribe %s", topic)
		}
	}
	go func() {
		for {
			select {
			case m := <-msgs:
				if !q.push(wire.Frame{Topic: m.Subject, Payload: m.Data}) {
					return
				}
			case <-q.done:
				return
			}
		}
	}()
	if err := nc.FlushWithContext(ctx); err != nil {
		_ = q.Close()
		return nil, errors.Wrap(err, "flush subscriptions")
	}

	log.Info().Str("endpoint", nc.ConnectedUrl()).Strs("topics", topics).Msg("subscribed")
	return q, nil
}

// NATSPublisher publishes frames as NATS messages on the frame's topic.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(n *NATS) (*NATSPublisher, error) {
	nc, err := n.dial()
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, f wire.Frame) error {
	if err := p.conn.Publish(f.Topic, f.Payload); err != nil {
		return errors.Wrapf(err, "publish %s", f.Topic)
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := p.conn.FlushWithContext(ctx)
	p.conn.Close()
	if err != nil {
		return errors.Wrap(err, "flush")
	}
	return nil
}
