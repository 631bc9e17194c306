package session

import "sync"

// AuthChanged announces an identity-state transition. Email is the newly
// signed-in identity, or empty when the session was cleared.
type AuthChanged struct {
	Email string
}

// Bus is a typed publish/subscribe channel for auth-state changes, replacing
// an ambient page-global event. Safe for concurrent use.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(AuthChanged)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(AuthChanged))}
}

// Subscribe registers fn and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (b *Bus) Subscribe(fn func(AuthChanged)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to every current subscriber. The subscriber list is
// copied under lock; callbacks run outside it so they may re-subscribe.
func (b *Bus) Publish(ev AuthChanged) {
	b.mu.Lock()
	fns := make([]func(AuthChanged), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
