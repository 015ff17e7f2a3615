package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hechonl_backend/internal/events"
)

func businessChanged(id string) events.StoreChanged {
	return events.StoreChanged{Entity: events.EntityBusiness, Action: events.ActionCreated, IDs: []string{id}}
}

func TestManager_KeepsChangesPublishedBeforeRun(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	manager := NewWebSocketManager(bus)
	assert.Equal(t, 1, bus.Stats().Subscribers)

	bus.Publish(businessChanged("early"))
	stats := bus.Stats()
	assert.Equal(t, int64(1), stats.Published)
	assert.Zero(t, stats.Dropped)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Run(ctx)

	client := &Client{ID: "c1", Send: make(chan any, sendBuffer), Manager: manager}
	require.True(t, manager.add(client))
	require.Eventually(t, func() bool { return manager.GetClientCount() == 1 }, time.Second, 5*time.Millisecond)

	// the early change may already have been relayed to nobody; a later one reaches the client
	bus.Publish(businessChanged("later"))
	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-client.Send:
			feed, ok := msg.(FeedMessage)
			require.True(t, ok)
			assert.Equal(t, "directory_changed", feed.Type)
			if feed.Event.IDs[0] != "later" {
				continue
			}
		case <-deadline:
			t.Fatal("no feed message for the later change")
		}
		break
	}

	cancel()
	require.Eventually(t, func() bool { return bus.Stats().Subscribers == 0 }, time.Second, 5*time.Millisecond)
	assert.False(t, manager.add(&Client{ID: "c2", Send: make(chan any, 1), Manager: manager}))
}

func TestManager_IgnoresOtherEntities(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	NewWebSocketManager(bus)
	bus.Publish(events.StoreChanged{Entity: events.EntityUser, Action: events.ActionCreated})
	assert.Zero(t, bus.Stats().Published)
}
