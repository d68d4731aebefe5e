// Package notify carries catalog change events to in-process listeners.
// Listeners get no payload: on CatalogChanged they re-query the catalog
// themselves. Delivery happens after the triggering operation's effects
// are durable; there are no ordering guarantees beyond that.
package notify

import "sync"

// Event is the kind of catalog notification.
type Event string

// CatalogChanged signals that the set or state of file records changed.
const CatalogChanged Event = "catalog_changed"

const subscriberBuffer = 16

// Notifier is a minimal publish point for catalog events.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

// New creates an empty notifier.
func New() *Notifier {
	return &Notifier{subs: map[int]chan Event{}}
}

// Subscribe registers a listener. The returned cancel func must be
// called when the listener is done; afterwards the channel is closed.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Event, subscriberBuffer)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber. Subscribers that have
// fallen behind their buffer miss the event rather than block the
// publisher; a missed CatalogChanged is safe because the next re-query
// observes the same state.
func (n *Notifier) Publish(event Event) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
