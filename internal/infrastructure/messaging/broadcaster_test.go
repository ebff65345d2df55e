package messaging

import (
	"encoding/json"
	"testing"
)

func TestBroadcaster_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBroadcaster(4, nil)

	first, ok := b.Subscribe()
	if !ok {
		t.Fatal("Subscribe() = false, want true")
	}
	defer first.Close()

	second, ok := b.Subscribe()
	if !ok {
		t.Fatal("Subscribe() = false, want true")
	}
	defer second.Close()

	b.Publish("cart", map[string]any{"op": "add", "count": 1})

	for i, sub := range []*Subscription{first, second} {
		select {
		case msg := <-sub.C:
			var decoded struct {
				Event   string         `json:"event"`
				Payload map[string]any `json:"payload"`
			}
			if err := json.Unmarshal([]byte(msg), &decoded); err != nil {
				t.Fatalf("subscriber %d got undecodable message: %v", i, err)
			}
			if decoded.Event != "cart" {
				t.Errorf("subscriber %d event = %q, want cart", i, decoded.Event)
			}
			if decoded.Payload["op"] != "add" {
				t.Errorf("subscriber %d payload = %v", i, decoded.Payload)
			}
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}

func TestBroadcaster_SubscriberLimit(t *testing.T) {
	b := NewBroadcaster(1, nil)

	sub, ok := b.Subscribe()
	if !ok {
		t.Fatal("first Subscribe() = false, want true")
	}

	if _, ok := b.Subscribe(); ok {
		t.Error("second Subscribe() over limit = true, want false")
	}

	// Releasing frees the slot.
	sub.Close()
	if _, ok := b.Subscribe(); !ok {
		t.Error("Subscribe() after release = false, want true")
	}
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	b := NewBroadcaster(2, nil)

	sub, ok := b.Subscribe()
	if !ok {
		t.Fatal("Subscribe() = false, want true")
	}

	sub.Close()
	sub.Close() // must not panic or double-close

	if b.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", b.SubscriberCount())
	}
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster(1, nil)

	sub, _ := b.Subscribe()
	defer sub.Close()

	// Fill the buffer past capacity; Publish must never block the caller.
	for i := 0; i < 40; i++ {
		b.Publish("cart", map[string]int{"i": i})
	}
}

func TestGate(t *testing.T) {
	g := NewGate()

	if g.Released() {
		t.Error("Released() before Release = true, want false")
	}
	select {
	case <-g.Done():
		t.Error("Done() closed before Release")
	default:
	}

	g.Release()
	g.Release() // idempotent

	if !g.Released() {
		t.Error("Released() after Release = false, want true")
	}
	select {
	case <-g.Done():
	default:
		t.Error("Done() not closed after Release")
	}
}
