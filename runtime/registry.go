package runtime

import (
	"sync"

	"github.com/namismyname/SocketTalk/contract"
	"github.com/namismyname/SocketTalk/domain"
)

// Registry tracks every open connection and the subset that has joined.
// sinks covers all open sockets so group traffic reaches anonymous
// connections too; users only holds authenticated sessions, and its size is
// the presence count.
type Registry struct {
	mu    sync.RWMutex
	sinks map[string]contract.EventSink // session id -> live connection
	users map[string]domain.User        // session id -> joined user
}

func NewRegistry() *Registry {
	return &Registry{
		sinks: make(map[string]contract.EventSink),
		users: make(map[string]domain.User),
	}
}

// Connect records the delivery channel for a freshly opened connection.
// The session is not considered joined until Join succeeds.
func (r *Registry) Connect(sessionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[sessionID] = sink
}

// Disconnect drops the connection's sink. Presence cleanup is separate
// (Remove), so a late lookup between the two simply misses.
func (r *Registry) Disconnect(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sinks, sessionID)
}

func (r *Registry) SinkFor(sessionID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sinks[sessionID]
	return sink, ok
}

// Sinks returns a snapshot of every live connection, joined or not.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sinks := make([]contract.EventSink, 0, len(r.sinks))
	for _, sink := range r.sinks {
		sinks = append(sinks, sink)
	}
	return sinks
}

// SinksExcept returns every live connection except the named session.
// Used for the user_joined notification, which skips the joiner.
func (r *Registry) SinksExcept(sessionID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sinks := make([]contract.EventSink, 0, len(r.sinks))
	for id, sink := range r.sinks {
		if id == sessionID {
			continue
		}
		sinks = append(sinks, sink)
	}
	return sinks
}

// Join binds the session to the username under a single lock acquisition.
// Three cases:
//   - session unknown: insert, NewJoin and Changed both true
//   - session joined under another name: update in place, Changed true
//   - session joined under the same name: no mutation at all
//
// The returned snapshot reflects the state after the mutation.
func (r *Registry) Join(sessionID, username string) domain.JoinChange {
	r.mu.Lock()
	defer r.mu.Unlock()

	change := domain.JoinChange{}
	existing, ok := r.users[sessionID]
	switch {
	case !ok:
		change.NewJoin = true
		change.Changed = true
	case existing.Username != username:
		change.Changed = true
	}

	user := domain.User{ID: sessionID, Username: username}
	if change.Changed {
		r.users[sessionID] = user
	}
	change.User = user
	change.Users = r.snapshotLocked()
	return change
}

// Remove unregisters a joined session. Reports false when the session never
// joined, which is not an error: disconnects of anonymous connections land
// here too.
func (r *Registry) Remove(sessionID string) (domain.User, []domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[sessionID]
	if !ok {
		return domain.User{}, nil, false
	}
	delete(r.users, sessionID)
	return user, r.snapshotLocked(), true
}

func (r *Registry) Lookup(sessionID string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[sessionID]
	return user, ok
}

// Users returns the full presence set. Order is unspecified.
func (r *Registry) Users() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Size is the number of joined sessions, not open connections.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *Registry) snapshotLocked() []domain.User {
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users
}
