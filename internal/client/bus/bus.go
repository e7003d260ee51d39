// Package bus provides the session event bus: a small broadcast channel the
// API client uses to signal that the server no longer accepts the session's
// token. It decouples error handling inside request paths from the session
// store, which owns the state transition. The bus is an explicit, constructed
// value wired at startup; there is no package-level instance.
package bus

import (
	"sync"
	"time"
)

// Invalidation is published whenever an authenticated request is rejected as
// unauthorized. Receiving one means the session is no longer valid
// server-side.
type Invalidation struct {
	// Reason is a short human-readable cause, e.g. "token rejected".
	Reason string
	// At is when the rejection was observed.
	At time.Time
}

// Handler receives invalidation events. Handlers must be safe to call from
// whichever goroutine performed the failing request, and must tolerate
// repeated deliveries (invalidating an already-empty session is a no-op).
type Handler func(Invalidation)

// Bus fans invalidation events out to subscribers.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]Handler
	nextID int
	closed bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Publish delivers ev to every current subscriber, synchronously, in
// unspecified order. Events published after Close are dropped.
func (b *Bus) Publish(ev Invalidation) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	// Handlers run outside the lock so they may subscribe or unsubscribe.
	for _, h := range handlers {
		h(ev)
	}
}

// Subscribe registers h and returns a cancel function that removes the
// subscription. Cancel is idempotent.
func (b *Bus) Subscribe(h Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Close drops all subscriptions and makes further publishes no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = map[int]Handler{}
}
