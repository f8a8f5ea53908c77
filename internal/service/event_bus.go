package service

import (
	"slices"
	"sync"

	"rangerblock/internal/core/domain"

	"github.com/rs/zerolog"
)

// EventBus fans out domain events to in-process subscribers.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type EventBus struct {
	buffer int
	log    zerolog.Logger

	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscription
}

type subscription struct {
	kinds []domain.EventKind
	ch    chan domain.Event
}

// NewEventBus creates a bus whose subscriber channels hold buffer events.
func NewEventBus(buffer int, log zerolog.Logger) *EventBus {
	if buffer <= 0 {
		buffer = 16
	}
	return &EventBus{buffer: buffer, log: log, subs: make(map[int]*subscription)}
}

// Subscribe returns a channel receiving the given kinds, or every kind when none are given.
// The returned function unsubscribes and closes the channel.
func (b *EventBus) Subscribe(kinds ...domain.EventKind) (<-chan domain.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	sub := &subscription{kinds: kinds, ch: make(chan domain.Event, b.buffer)}
	b.subs[id] = sub

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.ch)
		})
	}
}

// Publish delivers e to every matching subscriber.
func (b *EventBus) Publish(e domain.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, sub := range b.subs {
		if len(sub.kinds) > 0 && !slices.Contains(sub.kinds, e.Kind) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.log.Warn().
				Int("subscriber", id).
				Str("kind", string(e.Kind)).
				Msg("event dropped, subscriber buffer full")
		}
	}
}
