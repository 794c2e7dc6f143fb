package notify

import (
	"sync"

	chatservice "github.com/mwihoti/shauri/backend/internal/service/chat"
)

// subscriberBuffer bounds how many undelivered events a subscriber may hold.
const subscriberBuffer = 16

// Hub fans session-change events out to per-advisor subscribers. Publish
// never blocks: a subscriber whose buffer is full misses the event and
// catches up by re-fetching on the next one.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan chatservice.Event]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan chatservice.Event]struct{})}
}

// Subscribe registers a listener for one advisor's events.
func (h *Hub) Subscribe(advisorID string) chan chatservice.Event {
	ch := make(chan chatservice.Event, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[advisorID] == nil {
		h.subs[advisorID] = make(map[chan chatservice.Event]struct{})
	}
	h.subs[advisorID][ch] = struct{}{}
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (h *Hub) Unsubscribe(advisorID string, ch chan chatservice.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[advisorID]; ok {
		if _, ok := set[ch]; ok {
			delete(set, ch)
			close(ch)
		}
	}
}

// Publish delivers an event to every subscriber of its advisor.
func (h *Hub) Publish(event chatservice.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[event.AdvisorID] {
		select {
		case ch <- event:
		default:
		}
	}
}
