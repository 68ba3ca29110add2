package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	audit "passprove/pkg/platform/audit"
)

// ErrBufferFull is returned by Emit in async mode when the queue is saturated.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher writes events to a Store, either inline or through a bounded
// queue drained by a single goroutine.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	queue chan audit.Event
	wg    sync.WaitGroup
	once  sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given queue size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.queue = make(chan audit.Event, size)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.queue != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit stamps the event when Timestamp is zero and hands it to the store.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.queue == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// List returns the events recorded for a verification session.
func (p *Publisher) List(ctx context.Context, sessionID string) ([]audit.Event, error) {
	return p.store.ListBySession(ctx, sessionID)
}

// Close stops accepting async events and waits until the queue is drained.
func (p *Publisher) Close() {
	if p.queue == nil {
		return
	}
	p.once.Do(func() {
		close(p.queue)
		p.wg.Wait()
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.queue {
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Warn("failed to persist audit event",
				"action", event.Action,
				"session_id", event.SessionID,
				"error", err,
			)
		}
	}
}
