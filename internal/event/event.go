package event

import (
	"errors"
	"sync"
)

// ErrSubscriptionNotFound is returned when unsubscribing an unknown ID.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// Kind categorizes what part of the session state changed.
type Kind int

const (
	// KindDocument marks a change to the block tree.
	KindDocument Kind = iota

	// KindSelection marks a change to the selection or focus records.
	KindSelection

	// KindHistory marks an undo/redo restore or batch transition.
	KindHistory

	// KindDrag marks a drag-drop state transition.
	KindDrag
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindSelection:
		return "selection"
	case KindHistory:
		return "history"
	case KindDrag:
		return "drag"
	default:
		return "unknown"
	}
}

// Event is one state-change notification.
type Event struct {
	// Kind is the changed state category.
	Kind Kind

	// Description labels the change ("insert paragraph", "undo").
	Description string
}

// Listener receives events synchronously, on the caller's goroutine.
type Listener func(Event)

// Notifier is plain listener registration: no queues, no topics, no
// reactivity. The core logic never depends on it; only UI-facing
// layers subscribe.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns its subscription ID.
// Nil listeners are ignored and return -1.
func (n *Notifier) Subscribe(l Listener) int {
	if l == nil {
		return -1
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = l
	return id
}

// Unsubscribe removes a previously registered listener.
func (n *Notifier) Unsubscribe(id int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[id]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(n.listeners, id)
	return nil
}

// Publish delivers the event to every listener. Listeners run on the
// publishing goroutine, outside the notifier's lock, in unspecified
// order.
func (n *Notifier) Publish(e Event) {
	n.mu.Lock()
	ls := make([]Listener, 0, len(n.listeners))
	for _, l := range n.listeners {
		ls = append(ls, l)
	}
	n.mu.Unlock()

	for _, l := range ls {
		l(e)
	}
}

// Len returns the number of registered listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
