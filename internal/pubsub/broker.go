// Package pubsub provides a minimal in-process publish/subscribe broker.
package pubsub

import (
	"context"
	"sync"
)

// defaultBufferSize is the per-subscriber channel depth.
const defaultBufferSize = 64

// Broker fans messages out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the message.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan T]struct{}
	closed bool
}

// NewBroker creates a broker ready for use.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[chan T]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned channel is closed and
// the subscription removed when ctx is cancelled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, defaultBufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish delivers msg to every subscriber with buffer room.
func (b *Broker[T]) Publish(msg T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
			// Subscriber is lagging; drop rather than stall the publisher.
		}
	}
}

// Shutdown closes all subscriber channels. Publish becomes a no-op.
func (b *Broker[T]) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
		delete(b.subs, ch)
	}
}

func (b *Broker[T]) unsubscribe(ch chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}
