// Package events is the in-process notification emitter. Delivery is
// fire-and-forget and at-most-once: a publish never blocks, and subscribers
// that fall behind lose events.
package events

import "sync"

const (
	BookingCreated = "booking_created"
	SessionStarted = "session_started"
	SessionEnded   = "session_ended"
	BillPaid       = "bill_paid"
	RemoteAction   = "remote_action"
)

type Event struct {
	Name    string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
	buf  int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{}), buf: 16}
}

// Subscribe registers a listener. The returned cancel func must be called to
// release the channel; the channel is closed by cancel, not by the hub.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buf)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber whose buffer has room.
func (h *Hub) Publish(name string, payload map[string]any) {
	ev := Event{Name: name, Payload: payload}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
