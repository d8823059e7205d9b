// Package notify implements the fire-and-forget notification relay.
//
// The hub fans broadcast messages out to connected WebSocket listeners.
// Delivery is best-effort: there is no persistence, no ordering guarantee
// across subscribers, and a subscriber whose buffer is full simply misses
// the message. Service code publishes through the Notifier-shaped methods
// (EventCreated, EventUpdated); connected clients can also inject relay
// messages over the socket itself.
package notify

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/gatherhub/api/internal/model"
)

// Message types exchanged with listeners.
const (
	// Inbound, from clients.
	TypeRegister   = "register"
	TypeUnregister = "unregister"
	TypeNewEvent   = "newEvent"

	// Outbound, broadcast to all listeners.
	TypeUpdateEvent  = "updateEvent"
	TypeEventCreated = "eventCreated"
)

// Message is the wire frame exchanged with listeners.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// inboundMessage defers payload decoding until the type is known.
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Subscriber represents a connected listener.
type Subscriber struct {
	ID       string
	Messages chan *Message
	Done     chan struct{}
}

// Hub manages subscriptions and event broadcasting.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	closed      bool
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
	}
}

// Subscribe registers a new listener. The returned subscriber's Messages
// channel is closed when it is unsubscribed or the hub shuts down.
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{
		ID:       uuid.NewString(),
		Messages: make(chan *Message, 100), // Buffer to prevent blocking
		Done:     make(chan struct{}),
	}

	if h.closed {
		close(sub.Done)
		close(sub.Messages)
		return sub
	}

	h.subscribers[sub.ID] = sub
	return sub
}

// Unsubscribe removes a listener. Safe to call more than once.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[id]; ok {
		close(sub.Done)
		close(sub.Messages)
		delete(h.subscribers, id)
	}
}

// Broadcast sends a message to every listener. Listeners with full buffers
// are skipped.
func (h *Hub) Broadcast(msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		select {
		case sub.Messages <- msg:
		default:
			// Buffer full, skip this subscriber
		}
	}
}

// SubscriberCount returns the number of connected listeners.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close disconnects all listeners and rejects future subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for id, sub := range h.subscribers {
		close(sub.Done)
		close(sub.Messages)
		delete(h.subscribers, id)
	}
}

// EventCreated broadcasts a newly created event.
func (h *Hub) EventCreated(event *model.Event) {
	h.Broadcast(&Message{Type: TypeEventCreated, Data: event})
}

// EventUpdated broadcasts that an event's attendance changed.
func (h *Hub) EventUpdated(eventID string) {
	h.Broadcast(&Message{Type: TypeUpdateEvent, Data: eventID})
}

// Relay turns an inbound client message into its broadcast form and
// publishes it. Unknown types are dropped.
func (h *Hub) Relay(raw []byte) {
	var in inboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		return
	}

	switch in.Type {
	case TypeRegister, TypeUnregister:
		var eventID string
		if err := json.Unmarshal(in.Data, &eventID); err != nil || eventID == "" {
			return
		}
		h.EventUpdated(eventID)
	case TypeNewEvent:
		if len(in.Data) == 0 {
			return
		}
		h.Broadcast(&Message{Type: TypeEventCreated, Data: in.Data})
	}
}
