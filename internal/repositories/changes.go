package repositories

import (
	"sync"

	"hechonl_backend/internal/events"
)

// changeSink receives one event per successful mutation.
type changeSink interface {
	record(ev events.StoreChanged)
}

// busSink publishes immediately; used outside of a batch where each
// statement commits on its own.
type busSink struct {
	bus *events.Bus
}

func (s busSink) record(ev events.StoreChanged) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}

// pendingSink holds events until the batch transaction commits.
type pendingSink struct {
	mu     sync.Mutex
	events []events.StoreChanged
}

func (s *pendingSink) record(ev events.StoreChanged) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *pendingSink) drain() []events.StoreChanged {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.events
	s.events = nil
	return out
}

func changed(entity events.Entity, action events.Action, ids ...string) events.StoreChanged {
	return events.StoreChanged{Entity: entity, Action: action, IDs: ids}
}
