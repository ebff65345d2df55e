// Package messaging provides the state-change broadcaster the UI shell
// subscribes to for cart, wishlist, address, and session updates.
package messaging

import (
	"encoding/json"
	"sync"

	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
)

// Subscription is a disposable handle on the event stream. Whoever
// subscribes owns the release: Close must be called on every exit path, and
// calling it more than once is safe.
type Subscription struct {
	C       <-chan string
	once    sync.Once
	release func()
}

// Close releases the subscription and its channel.
func (s *Subscription) Close() {
	s.once.Do(s.release)
}

// Broadcaster fans state-change events out to subscribed UI clients.
// Delivery is best-effort: a subscriber that cannot keep up has events
// dropped rather than blocking the mutating caller.
type Broadcaster struct {
	mu      sync.Mutex
	subs    map[chan string]struct{}
	maxSubs int
	logger  *logging.ChanneledLogger
}

// NewBroadcaster creates a broadcaster allowing up to maxSubs concurrent
// subscribers.
func NewBroadcaster(maxSubs int, logger *logging.ChanneledLogger) *Broadcaster {
	return &Broadcaster{
		subs:    make(map[chan string]struct{}),
		maxSubs: maxSubs,
		logger:  logger,
	}
}

// Subscribe registers a new client and returns its disposable handle, or
// false when the subscriber limit is reached.
func (b *Broadcaster) Subscribe() (*Subscription, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.subs) >= b.maxSubs {
		if b.logger != nil {
			b.logger.SSE().Warn("Subscriber limit reached", "max", b.maxSubs)
		}
		return nil, false
	}

	ch := make(chan string, 16)
	b.subs[ch] = struct{}{}

	if b.logger != nil {
		b.logger.SSE().Debug("Event subscriber registered", "subscribers", len(b.subs))
	}

	return &Subscription{
		C: ch,
		release: func() {
			b.mu.Lock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
			count := len(b.subs)
			b.mu.Unlock()
			if b.logger != nil {
				b.logger.SSE().Debug("Event subscriber released", "subscribers", count)
			}
		},
	}, true
}

// Publish encodes payload as a named event and delivers it to every
// subscriber without blocking.
func (b *Broadcaster) Publish(event string, payload any) {
	body, err := json.Marshal(map[string]any{"event": event, "payload": payload})
	if err != nil {
		if b.logger != nil {
			b.logger.SSE().Error("Failed to encode event", "event", event, "error", err.Error())
		}
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	dropped := 0
	for ch := range b.subs {
		select {
		case ch <- string(body):
		default:
			dropped++
		}
	}

	if b.logger != nil {
		b.logger.SSE().Debug("Event published", "event", event, "subscribers", len(b.subs), "dropped", dropped)
	}
}

// SubscriberCount returns the number of live subscriptions.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
