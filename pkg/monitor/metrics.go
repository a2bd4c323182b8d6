package monitor

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	emitReasonMutation = "mutation"
	emitReasonIdle     = "idle"
)

// Metrics are the engine's Prometheus collectors.
type Metrics struct {
	MessagesReceived  *prometheus.CounterVec
	DecodeErrors      *prometheus.CounterVec
	Emissions         *prometheus.CounterVec
	EmitErrors        prometheus.Counter
	Suppressed        prometheus.Counter
	TransportFailures prometheus.Counter
	StoreSize         prometheus.Gauge
	LastEmit          prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		MessagesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipemon",
				Subsystem: "messages",
				Name:      "received_total",
				Help:      "Decoded messages by event kind",
			},
			[]string{"kind"},
		),
		DecodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipemon",
				Subsystem: "messages",
				Name:      "decode_errors_total",
				Help:      "Messages dropped because their payload did not decode",
			},
			[]string{"topic"},
		),
		Emissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipemon",
				Subsystem: "publisher",
				Name:      "emissions_total",
				Help:      "Snapshots handed to the presentation layer",
			},
			[]string{"reason"},
		),
		EmitErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "pipemon",
				Subsystem: "publisher",
				Name:      "emit_errors_total",
				Help:      "Emissions the sink rejected",
			},
		),
		Suppressed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "pipemon",
				Subsystem: "publisher",
				Name:      "suppressed_total",
				Help:      "Mutations not emitted because of the frame-rate cap",
			},
		),
		TransportFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "pipemon",
				Subsystem: "transport",
				Name:      "failures_total",
				Help:      "Transport connect failures",
			},
		),
		StoreSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "pipemon",
				Subsystem: "store",
				Name:      "steps",
				Help:      "Number of step records currently held",
			},
		),
		LastEmit: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "pipemon",
				Subsystem: "publisher",
				Name:      "last_emit_timestamp_seconds",
				Help:      "Unix time of the last snapshot handed to the presentation layer",
			},
		),
	}
}

// Register adds all collectors to r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.MessagesReceived,
		m.DecodeErrors,
		m.Emissions,
		m.EmitErrors,
		m.Suppressed,
		m.TransportFailures,
		m.StoreSize,
		m.LastEmit,
	} {
		if err := r.Register(c); err != nil {
			return errors.Wrap(err, "register monitor metric")
		}
	}
	return nil
}
