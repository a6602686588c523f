//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/namismyname/SocketTalk/domain"
	"github.com/namismyname/SocketTalk/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the delivery end of one client connection. Consume must never
// block indefinitely: a full buffer drops the event (best effort delivery).
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry is the single source of truth for who is online.
// Connection tracking (sinks) and presence (joined users) are deliberately
// separate: every open socket has a sink, only authenticated sessions have a
// User. Size counts joined users, not open sockets.
type IRegistry interface {
	// Connection tracking, transport lifetime.
	Connect(sessionID string, sink EventSink)
	Disconnect(sessionID string)
	SinkFor(sessionID string) (EventSink, bool)
	Sinks() []EventSink
	SinksExcept(sessionID string) []EventSink

	// Presence, join/leave lifetime. Join and Remove are atomic: the
	// check-then-mutate runs under one lock so concurrent handlers cannot
	// both claim the same slot.
	Join(sessionID, username string) domain.JoinChange
	Remove(sessionID string) (domain.User, []domain.User, bool)
	Lookup(sessionID string) (domain.User, bool)
	Users() []domain.User
	Size() int
}
