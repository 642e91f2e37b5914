package mailbox

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/utils"
)

// EventType classifies mailbox change notifications.
type EventType string

const (
	EventThreadUpdated EventType = "thread_updated"
	EventThreadDeleted EventType = "thread_deleted"
	EventMessageSent   EventType = "message_sent"
)

// Event is a real-time notification about a mailbox mutation. Thread is
// the authoritative post-mutation entity and is nil for deletions.
type Event struct {
	ID       string              `json:"id"`
	Type     EventType           `json:"type"`
	ThreadID string              `json:"thread_id"`
	Thread   *models.EmailThread `json:"thread,omitempty"`
	Time     time.Time           `json:"time"`
}

// Hub fans mailbox events out to SSE and websocket subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	closed      bool
}

// NewHub creates an event hub with no subscribers.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its ID and channel.
// The channel is buffered; slow consumers drop events instead of blocking
// mutations.
func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, 16)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish delivers an event to every subscriber without blocking.
func (h *Hub) Publish(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			utils.Log.Warn("dropping event %s for slow subscriber %s", event.Type, id)
		}
	}
}

// Close shuts the hub down and closes all subscriber channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}

// SubscriberCount returns the number of live subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
