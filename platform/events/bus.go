// Package events is the in-process publish/subscribe bus that carries
// appointment events from the HTTP modules to notification and scheduling.
package events

import (
	"context"
	"sync"
	"time"

	"salesdesk_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Event is anything published on the bus. Subscribers are keyed by EventName.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by concrete events to stamp the publish time.
type BaseEvent struct {
	At time.Time `json:"at"`
}

// NewBaseEvent stamps the current UTC time.
func NewBaseEvent() BaseEvent { return BaseEvent{At: time.Now().UTC()} }

func (e BaseEvent) OccurredAt() time.Time { return e.At }

// Handler reacts to one published event.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error { return f(ctx, event) }

// Bus is what modules depend on. Publish is fire-and-forget; PublishSync
// returns the first handler error.
type Bus interface {
	Publish(ctx context.Context, event Event)
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}

// InMemoryBus dispatches events to handlers registered in the same process.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
	log      *logger.Logger
}

// NewInMemoryBus creates an empty bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	if log == nil {
		log = logger.Discard()
	}
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers handler for eventName.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

func (b *InMemoryBus) handlersFor(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Handler, len(b.handlers[eventName]))
	copy(out, b.handlers[eventName])
	return out
}

// Publish runs every handler in its own goroutine. The handlers get a context
// detached from the caller's cancellation so a finished HTTP request does not
// abort them.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	handlers := b.handlersFor(event.EventName())
	if len(handlers) == 0 {
		return
	}

	detached := context.WithoutCancel(ctx)
	for _, h := range handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			if err := h.Handle(detached, event); err != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "occurred_at", event.OccurredAt(), "error", err)
			}
		}(h)
	}
}

// PublishSync runs every handler concurrently and returns the first error.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, h := range b.handlersFor(event.EventName()) {
		h := h
		g.Go(func() error {
			return h.Handle(gctx, event)
		})
	}
	return g.Wait()
}

// Wait blocks until all asynchronously published events have been handled.
func (b *InMemoryBus) Wait() {
	b.wg.Wait()
}

var _ Bus = (*InMemoryBus)(nil)
