// Package eventbus is a minimal in-process pub/sub used to fan resource
// change events out to subscribers.
package eventbus

import (
	"context"
	"sync"

	"github.com/nrednav/cuid2"
	"github.com/sourcegraph/conc/pool"
)

type Bus[T any] struct {
	eventsChan        chan T
	eventHandlers     map[string]func(context.Context, T)
	eventHandlersLock sync.RWMutex
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{
		eventsChan:    make(chan T, 16),
		eventHandlers: make(map[string]func(context.Context, T)),
	}
}

// PublishEvent never blocks the caller; delivery happens on the dispatcher
// goroutine.
func (b *Bus[T]) PublishEvent(event T) {
	go func() {
		b.eventsChan <- event
	}()
}

// SubscribeToEvents registers handler and returns its unsubscribe function.
func (b *Bus[T]) SubscribeToEvents(handler func(context.Context, T)) func() {
	b.eventHandlersLock.Lock()
	defer b.eventHandlersLock.Unlock()
	subscriptionID := cuid2.Generate()
	b.eventHandlers[subscriptionID] = handler

	return func() {
		b.eventHandlersLock.Lock()
		defer b.eventHandlersLock.Unlock()
		delete(b.eventHandlers, subscriptionID)
	}
}

// StartDispatcher delivers published events to every handler until ctx is
// cancelled. Handlers for one event run concurrently; the dispatcher waits
// for all of them before taking the next event.
func (b *Bus[T]) StartDispatcher(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-b.eventsChan:
			b.dispatchEvent(ctx, event)
		}
	}
}

func (b *Bus[T]) dispatchEvent(ctx context.Context, event T) {
	b.eventHandlersLock.RLock()
	defer b.eventHandlersLock.RUnlock()

	p := pool.New().WithContext(ctx)
	for _, handler := range b.eventHandlers {
		p.Go(func(ctx context.Context) error {
			handler(ctx, event)
			return nil
		})
	}
	_ = p.Wait()
}
