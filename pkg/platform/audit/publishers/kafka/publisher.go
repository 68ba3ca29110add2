// Package kafka ships audit events to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "passprove/pkg/platform/audit"
)

// Metrics counts producer outcomes.
type Metrics struct {
	Produced prometheus.Counter
	Failed   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Produced: f.NewCounter(prometheus.CounterOpts{
			Name: "passprove_audit_kafka_produced_total",
			Help: "Audit events acknowledged by Kafka",
		}),
		Failed: f.NewCounter(prometheus.CounterOpts{
			Name: "passprove_audit_kafka_failed_total",
			Help: "Audit events Kafka rejected or that could not be encoded",
		}),
	}
}

// Publisher produces audit events keyed by session id so a session's events
// land on one partition in order.
type Publisher struct {
	client  *kgo.Client
	topic   string
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// New connects a producer to brokers. The client dials lazily; EnsureTopic
// is the first real round trip.
func New(brokers []string, topic string, opts ...Option) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	p := &Publisher{client: client, topic: topic, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// EnsureTopic creates the audit topic if the cluster doesn't have it yet.
func (p *Publisher) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Emit enqueues the event and returns immediately; delivery failures are
// logged and counted from the produce callback.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.incFailed()
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{Key: []byte(event.SessionID), Value: value}
	// Produce inherits ctx cancellation; the request context ends with the response.
	p.client.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		if err != nil {
			p.incFailed()
			p.logger.Warn("failed to produce audit event",
				"topic", r.Topic,
				"action", event.Action,
				"session_id", event.SessionID,
				"error", err,
			)
			return
		}
		if p.metrics != nil {
			p.metrics.Produced.Inc()
		}
	})
	return nil
}

// Close flushes buffered records and closes the client.
func (p *Publisher) Close(ctx context.Context) error {
	err := p.client.Flush(ctx)
	p.client.Close()
	if err != nil {
		return fmt.Errorf("flush audit producer: %w", err)
	}
	return nil
}

func (p *Publisher) incFailed() {
	if p.metrics != nil {
		p.metrics.Failed.Inc()
	}
}
