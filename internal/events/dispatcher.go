package events

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

const (
	DefaultBuffer      = 100
	DefaultSinkTimeout = 5 * time.Second
	DefaultMaxAttempts = 3
)

var ErrClosed = errors.New("events: dispatcher closed")

// Sink receives every dispatched event. Publish errors are logged, never
// propagated to the request that produced the event.
type Sink interface {
	Name() string
	Publish(ctx context.Context, ev Event) error
}

// Publisher is what use cases depend on.
type Publisher interface {
	Dispatch(ev Event) bool
}

// Dispatcher queues events in a bounded buffer drained by one worker.
type Dispatcher struct {
	log     *zap.Logger
	metrics *metrics.Metrics
	sinks   []Sink
	timeout time.Duration

	// per sink; sinks must tolerate redelivery
	maxAttempts int
	backoff     func(attempt int) time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(log *zap.Logger, m *metrics.Metrics, buffer int, sinks ...Sink) *Dispatcher {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	d := &Dispatcher{
		log:     logger.OrNop(log).Named("events"),
		metrics: m,
		sinks:   sinks,
		timeout: DefaultSinkTimeout,
		queue:   make(chan Event, buffer),
		done:    make(chan struct{}),

		maxAttempts: DefaultMaxAttempts,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * 100 * time.Millisecond
		},
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	for _, s := range d.sinks {
		if err := d.publish(s, ev); err != nil {
			d.metrics.Event(string(ev.Type), "failed")
			d.log.Error("sink publish gave up",
				zap.String("sink", s.Name()),
				zap.String("event_id", ev.ID),
				zap.String("event_type", string(ev.Type)),
				zap.Int("attempts", d.maxAttempts),
				zap.Error(err),
			)
			continue
		}
		d.metrics.Event(string(ev.Type), "published")
	}
}

// publish retries one sink with backoff until it accepts ev or the
// attempts run out.
func (d *Dispatcher) publish(s Sink, ev Event) error {
	var err error
	for attempt := 0; attempt < d.maxAttempts; attempt++ {
		if attempt > 0 {
			d.metrics.Event(string(ev.Type), "retried")
			time.Sleep(d.backoff(attempt - 1))
		}

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err = s.Publish(ctx, ev)
		cancel()
		if err == nil {
			return nil
		}

		d.log.Warn("sink publish failed",
			zap.String("sink", s.Name()),
			zap.String("event_id", ev.ID),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return err
}

// Dispatch enqueues ev without blocking. It reports false when the event
// was dropped because the buffer is full or the dispatcher is closed.
func (d *Dispatcher) Dispatch(ev Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("dispatcher closed, dropping event", zap.String("event_type", string(ev.Type)))
		d.metrics.Event(string(ev.Type), "dropped")
		return false
	}

	select {
	case d.queue <- ev:
		return true
	default:
		d.log.Warn("event queue full, dropping event",
			zap.String("event_id", ev.ID),
			zap.String("event_type", string(ev.Type)),
		)
		d.metrics.Event(string(ev.Type), "dropped")
		return false
	}
}

// Close stops accepting events, drains the queue and closes sinks that
// hold resources. It returns ctx.Err() if draining outlives ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	select {
	case <-d.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	var errs []error
	for _, s := range d.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event. Used where no dispatcher is wired.
type Discard struct{}

func (Discard) Dispatch(Event) bool { return true }
