package document

import (
	"sync"

	"github.com/google/uuid"
)

// EventKind identifies a document state transition.
type EventKind int

const (
	// EventParsed fires once per published parse.
	EventParsed EventKind = iota
	// EventValidated fires once per completed validation pass.
	EventValidated
)

func (k EventKind) String() string {
	switch k {
	case EventParsed:
		return "parsed"
	case EventValidated:
		return "validated"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers.
type Event struct {
	Kind     EventKind
	Document *Document
	Snapshot *Snapshot
}

// notifier fans events out to subscribed callbacks. Callbacks run on the
// goroutine that publishes the event and must not block.
type notifier struct {
	mu        sync.RWMutex
	listeners map[uuid.UUID]func(Event)
}

func newNotifier() *notifier {
	return &notifier{
		listeners: make(map[uuid.UUID]func(Event)),
	}
}

// subscribe registers fn and returns a function that removes it. The
// returned function is safe to call more than once.
func (n *notifier) subscribe(fn func(Event)) func() {
	id := uuid.New()
	n.mu.Lock()
	n.listeners[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}

func (n *notifier) broadcast(ev Event) {
	n.mu.RLock()
	fns := make([]func(Event), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (n *notifier) len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
