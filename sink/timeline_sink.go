package sink

import (
	"context"
	"sync"

	"github.com/namismyname/SocketTalk/domain"
	"github.com/namismyname/SocketTalk/domain/event"
)

// Timeline accumulates everything delivered to one logical client: the
// messages it received and the presence sets it observed. Handy for tests
// and local tooling; consumers sort Messages by timestamp for display.
type Timeline struct {
	Owner string

	mu       sync.Mutex
	messages []domain.Message
	events   []event.DomainEvent
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{Owner: owner}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
	if m, ok := e.(event.MessageDelivered); ok {
		t.messages = append(t.messages, m.Message)
	}
	return nil
}

// Messages returns a copy of every chat message seen so far.
func (t *Timeline) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Message(nil), t.messages...)
}

// Events returns a copy of every event seen so far, in arrival order.
func (t *Timeline) Events() []event.DomainEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]event.DomainEvent(nil), t.events...)
}
