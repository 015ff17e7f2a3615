// Package events is an in-process publish/subscribe bus for store changes.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"hechonl_backend/internal/logger"
)

type Entity string

const (
	EntityUser     Entity = "user"
	EntityBusiness Entity = "business"
	EntitySetting  Entity = "setting"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// StoreChanged is published once per committed store mutation.
type StoreChanged struct {
	Seq    int64     `json:"seq"`
	Entity Entity    `json:"entity"`
	Action Action    `json:"action"`
	IDs    []string  `json:"ids,omitempty"`
	At     time.Time `json:"at"`
}

// Subscription receives events on C until Close is called.
type Subscription struct {
	C        <-chan StoreChanged
	ch       chan StoreChanged
	name     string
	entities map[Entity]bool
	bus      *Bus
	once     sync.Once
}

func (s *Subscription) wants(e Entity) bool {
	return len(s.entities) == 0 || s.entities[e]
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.unsubscribe(s)
	})
}

// Bus fans events out to subscribers without ever blocking the publisher.
// When a subscriber's buffer is full the event is dropped for that
// subscriber only. A subscriber with a buffer of 1 therefore sees changes
// coalesced: at least one event is pending after every publish.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool

	seq       int64
	published int64
	dropped   int64
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a subscriber. When entities are given only events
// for those entities are delivered.
func (b *Bus) Subscribe(name string, buffer int, entities ...Entity) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan StoreChanged, buffer)
	sub := &Subscription{C: ch, ch: ch, name: name, bus: b}
	if len(entities) > 0 {
		sub.entities = make(map[Entity]bool, len(entities))
		for _, e := range entities {
			sub.entities[e] = true
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return sub
	}
	b.subs[sub] = struct{}{}
	logger.Debug("event subscriber added", "subscriber", name, "buffer", buffer, "total", len(b.subs))
	return sub
}

func (b *Bus) unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[s]; !ok {
		return
	}
	delete(b.subs, s)
	close(s.ch)
	logger.Debug("event subscriber removed", "subscriber", s.name)
}

// Publish stamps the event with a sequence number and delivers it.
func (b *Bus) Publish(ev StoreChanged) {
	ev.Seq = atomic.AddInt64(&b.seq, 1)
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for sub := range b.subs {
		if !sub.wants(ev.Entity) {
			continue
		}
		select {
		case sub.ch <- ev:
			atomic.AddInt64(&b.published, 1)
		default:
			atomic.AddInt64(&b.dropped, 1)
			logger.Debug("event coalesced for busy subscriber",
				"subscriber", sub.name,
				"entity", ev.Entity,
				"seq", ev.Seq,
			)
		}
	}
}

// Close closes every subscription channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub.ch)
	}
	b.subs = map[*Subscription]struct{}{}
}

type Stats struct {
	Subscribers int   `json:"subscribers"`
	Published   int64 `json:"published"`
	Dropped     int64 `json:"dropped"`
}

func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		Subscribers: n,
		Published:   atomic.LoadInt64(&b.published),
		Dropped:     atomic.LoadInt64(&b.dropped),
	}
}
