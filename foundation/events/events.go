// Package events fans ledger activity out to registered listeners such as
// websocket clients.
package events

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Event is a single message produced by the ledger.
type Event struct {
	Source  string    `json:"source"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// NewEvent constructs an event from a raw ledger message. Ledger messages
// are prefixed with the package that produced them, "state: Submit: ...",
// which becomes the source.
func NewEvent(msg string) Event {
	src, rest, ok := strings.Cut(msg, ":")
	if !ok {
		return Event{Source: "ledger", Message: msg, Time: time.Now().UTC()}
	}

	return Event{
		Source:  strings.TrimSpace(src),
		Message: strings.TrimSpace(rest),
		Time:    time.Now().UTC(),
	}
}

// =============================================================================

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]chan Event
	mu sync.RWMutex
}

// New constructs an events for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]chan Event),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) <-chan Event {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.m[id]; exists {
		return ch
	}

	// A message is dropped if the receiver is not ready, the buffer gives a
	// slow websocket writer room to catch up.
	const messageBuffer = 100

	ch := make(chan Event, messageBuffer)
	evt.m[id] = ch

	return ch
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)

	return nil
}

// Len returns the number of registered listeners.
func (evt *Events) Len() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.m)
}

// Send signals a message to every registered channel. Send will not block
// waiting for a receiver on any given channel.
func (evt *Events) Send(msg string) {
	e := NewEvent(msg)

	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- e:
		default:
		}
	}
}
