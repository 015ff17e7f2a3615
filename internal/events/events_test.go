package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversToEverySubscriber(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe("a", 4)
	b := bus.Subscribe("b", 4)

	bus.Publish(StoreChanged{Entity: EntityBusiness, Action: ActionCreated, IDs: []string{"1"}})

	for _, sub := range []*Subscription{a, b} {
		select {
		case ev := <-sub.C:
			assert.Equal(t, EntityBusiness, ev.Entity)
			assert.Equal(t, []string{"1"}, ev.IDs)
			assert.Equal(t, int64(1), ev.Seq)
			assert.False(t, ev.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestBus_CoalescesForFullSubscriber(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("sync", 1)

	for i := 0; i < 5; i++ {
		bus.Publish(StoreChanged{Entity: EntityBusiness, Action: ActionUpdated})
	}

	ev := <-sub.C
	assert.Equal(t, int64(1), ev.Seq)
	select {
	case <-sub.C:
		t.Fatal("expected remaining events to be coalesced")
	default:
	}

	stats := bus.Stats()
	assert.Equal(t, int64(1), stats.Published)
	assert.Equal(t, int64(4), stats.Dropped)
}

func TestBus_PublishNeverBlocksWithoutReader(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("idle", 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(StoreChanged{Entity: EntityUser, Action: ActionCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}
}

func TestSubscription_Close(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("ws", 2)
	sub.Close()
	sub.Close()

	_, ok := <-sub.C
	assert.False(t, ok)
	assert.Equal(t, 0, bus.Stats().Subscribers)

	bus.Publish(StoreChanged{Entity: EntityBusiness})
}

func TestBus_Close(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("a", 1)
	bus.Close()

	_, ok := <-sub.C
	require.False(t, ok)

	late := bus.Subscribe("late", 1)
	_, ok = <-late.C
	assert.False(t, ok)

	sub.Close()
	bus.Publish(StoreChanged{})
}

func TestBus_EntityFilter(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("sync", 1, EntityBusiness)

	bus.Publish(StoreChanged{Entity: EntitySetting, Action: ActionUpdated})
	bus.Publish(StoreChanged{Entity: EntityBusiness, Action: ActionDeleted, IDs: []string{"7"}})

	ev := <-sub.C
	assert.Equal(t, EntityBusiness, ev.Entity)
	assert.Equal(t, int64(0), bus.Stats().Dropped)
}
