package sse

import (
	"sync"
)

// EventQueueUpdated is pushed to a venue's stream whenever its board changes.
const EventQueueUpdated = "queue_updated"

// Event represents an SSE event to be sent to subscribers
type Event struct {
	VenueID string
	Event   string
	Data    interface{}
}

// Hub manages SSE subscribers and event broadcasting. Subscribers are
// keyed by venue: every queue display of one venue sees the same stream.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a venue and returns the event channel and cleanup function
func (h *Hub) Subscribe(venueID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[venueID] == nil {
		h.subscribers[venueID] = make(map[chan Event]struct{})
	}
	h.subscribers[venueID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[venueID], ch)
		close(ch)
		if len(h.subscribers[venueID]) == 0 {
			delete(h.subscribers, venueID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a venue
func (h *Hub) Publish(venueID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[venueID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a venue
func (h *Hub) SubscriberCount(venueID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[venueID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers across all venues
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
