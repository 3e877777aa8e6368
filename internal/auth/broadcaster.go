package auth

import (
	"sync"

	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// Broadcaster fans auth-state transitions out to registered callbacks. It is
// the in-process replacement for a push-based provider subscription: the
// session and the navigation layer both re-check permissions when notified.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(interfaces.AuthEvent)
}

// NewBroadcaster constructs an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]func(interfaces.AuthEvent))}
}

// Subscribe registers fn and returns its unsubscribe function. Unsubscribe is
// idempotent and must be called on teardown.
func (b *Broadcaster) Subscribe(fn func(interfaces.AuthEvent)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Publish delivers event to every current subscriber. Callbacks run on the
// caller's goroutine; subscribers must not block.
func (b *Broadcaster) Publish(event interfaces.AuthEvent) {
	b.mu.Lock()
	fns := make([]func(interfaces.AuthEvent), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}
