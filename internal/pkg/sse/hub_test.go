package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("venue-1")
	defer cleanup()

	hub.Publish("venue-1", Event{VenueID: "venue-1", Event: EventQueueUpdated, Data: "board"})

	event := <-ch
	assert.Equal(t, EventQueueUpdated, event.Event)
	assert.Equal(t, "board", event.Data)
}

func TestPublishDoesNotCrossVenues(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("venue-1")
	defer cleanup()

	hub.Publish("venue-2", Event{VenueID: "venue-2", Event: EventQueueUpdated})

	select {
	case <-ch:
		t.Fatal("received event for another venue")
	default:
	}
}

func TestCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("venue-1")
	require.Equal(t, 1, hub.SubscriberCount("venue-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("venue-1"))
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("venue-1")
	defer cleanup()

	// Channel buffer is 10; a slow consumer must not block the publisher
	for i := 0; i < 25; i++ {
		hub.Publish("venue-1", Event{VenueID: "venue-1", Event: EventQueueUpdated, Data: i})
	}

	assert.Len(t, ch, 10)
}

func TestTotalSubscribers(t *testing.T) {
	hub := NewHub()

	_, cleanup1 := hub.Subscribe("venue-1")
	defer cleanup1()
	_, cleanup2 := hub.Subscribe("venue-1")
	defer cleanup2()
	_, cleanup3 := hub.Subscribe("venue-2")
	defer cleanup3()

	assert.Equal(t, 3, hub.TotalSubscribers())
}
