// Package events carries product change notifications between controllers.
package events

import (
	"fmt"
	"sync"

	"tableflip.dev/catalog/pkg/product"
)

// Kind enumerates the change actions controllers announce.
type Kind string

const (
	// Submitted indicates a new product was created.
	Submitted Kind = "submitted"
	// Updated indicates an existing product was changed.
	Updated Kind = "updated"
	// Deleted indicates a product was removed.
	Deleted Kind = "deleted"
)

// Event announces a product change regardless of which controller made it.
type Event struct {
	Kind Kind
	ID   string
	// Product is set when the server returned the record.
	Product *product.Product
}

// Describe renders the event in a human-friendly format for logs.
func (e Event) Describe() string {
	name := ""
	if e.Product != nil {
		name = e.Product.Name
	}
	return fmt.Sprintf(`kind:%q id:%q name:%q`, e.Kind, e.ID, name)
}

// Handler reacts to an event.
type Handler func(Event)

// Publisher is the sending side of a Bus.
type Publisher interface {
	Publish(Event)
}

// Bus delivers events to subscribers synchronously, in subscription order.
// The zero value is ready to use.
type Bus struct {
	mu       sync.RWMutex
	next     int
	handlers []subscription
}

type subscription struct {
	id int
	h  Handler
}

var _ Publisher = (*Bus)(nil)

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.handlers = append(b.handlers, subscription{id: id, h: h})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.handlers {
				if s.id == id {
					b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish calls every handler with ev. Handlers may subscribe or
// unsubscribe while being called; changes apply to the next Publish.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	for i, s := range b.handlers {
		handlers[i] = s.h
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Discard is a Publisher that drops events.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}
