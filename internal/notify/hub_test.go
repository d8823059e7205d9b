package notify

import (
	"testing"
	"time"

	"github.com/gatherhub/api/internal/model"
)

func receive(t *testing.T, sub *Subscriber) *Message {
	t.Helper()
	select {
	case msg := <-sub.Messages:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	a := hub.Subscribe()
	b := hub.Subscribe()

	hub.EventUpdated("event:1")

	for _, sub := range []*Subscriber{a, b} {
		msg := receive(t, sub)
		if msg.Type != TypeUpdateEvent {
			t.Errorf("expected %s, got %s", TypeUpdateEvent, msg.Type)
		}
		if msg.Data != "event:1" {
			t.Errorf("expected event:1, got %v", msg.Data)
		}
	}
}

func TestHub_EventCreated(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe()

	event := &model.Event{ID: "event:1", Title: "Go Meetup"}
	hub.EventCreated(event)

	msg := receive(t, sub)
	if msg.Type != TypeEventCreated {
		t.Errorf("expected %s, got %s", TypeEventCreated, msg.Type)
	}
	if got, ok := msg.Data.(*model.Event); !ok || got.ID != "event:1" {
		t.Errorf("expected event:1 payload, got %v", msg.Data)
	}
}

func TestHub_UnsubscribedMissesBroadcasts(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe()
	hub.Unsubscribe(sub.ID)

	if _, ok := <-sub.Messages; ok {
		t.Error("expected closed channel after unsubscribe")
	}

	// Must not panic with no subscribers.
	hub.EventUpdated("event:1")

	if hub.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", hub.SubscriberCount())
	}
}

func TestHub_FullBufferDropsMessage(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe()
	for i := 0; i < cap(sub.Messages)+10; i++ {
		hub.EventUpdated("event:1")
	}

	// The slow subscriber lost the overflow but the hub never blocked.
	if len(sub.Messages) != cap(sub.Messages) {
		t.Errorf("expected a full buffer, got %d", len(sub.Messages))
	}
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe()
	hub.Close()

	select {
	case <-sub.Done:
	default:
		t.Error("expected Done to be closed after Close")
	}

	// Subscriptions after Close come back already closed.
	late := hub.Subscribe()
	select {
	case <-late.Done:
	default:
		t.Error("expected post-Close subscription to be closed")
	}

	// Close is idempotent.
	hub.Close()
}

func TestHub_Relay(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe()

	tests := []struct {
		name     string
		raw      string
		wantType string
	}{
		{"register", `{"type":"register","data":"event:1"}`, TypeUpdateEvent},
		{"unregister", `{"type":"unregister","data":"event:1"}`, TypeUpdateEvent},
		{"newEvent", `{"type":"newEvent","data":{"id":"event:2"}}`, TypeEventCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub.Relay([]byte(tt.raw))
			msg := receive(t, sub)
			if msg.Type != tt.wantType {
				t.Errorf("expected %s, got %s", tt.wantType, msg.Type)
			}
		})
	}
}

func TestHub_RelayIgnoresJunk(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe()

	hub.Relay([]byte(`not json`))
	hub.Relay([]byte(`{"type":"register","data":""}`))
	hub.Relay([]byte(`{"type":"register","data":42}`))
	hub.Relay([]byte(`{"type":"mystery","data":"x"}`))
	hub.Relay([]byte(`{"type":"newEvent"}`))

	select {
	case msg := <-sub.Messages:
		t.Errorf("expected no broadcast, got %v", msg)
	default:
	}
}
