// Package event defines the domain events fanned out to connected sessions.
// Every event names the wire event it becomes; the transport layer only
// translates shapes, it never invents events.
package event

import (
	"time"

	"github.com/namismyname/SocketTalk/domain"
)

type DomainEvent interface {
	// Name returns the protocol event name this domain event is emitted as.
	Name() string
}

const (
	LoginAcknowledgedName = "login_attempt_acknowledged"
	LoginSucceededName    = "login_success"
	LoginFailedName       = "login_failed"
	UserJoinedName        = "user_joined"
	UserLeftName          = "user_left"
	UserListUpdatedName   = "user_list_update"
	MessageDeliveredName  = "new_message"
)

// LoginAcknowledged is the heartbeat emitted to the caller before any login
// work starts. It carries no verdict.
type LoginAcknowledged struct {
	SessionID string
	At        time.Time
}

func (LoginAcknowledged) Name() string { return LoginAcknowledgedName }

// LoginSucceeded carries the join outcome back to the authenticated caller.
type LoginSucceeded struct {
	Result domain.JoinResult
}

func (LoginSucceeded) Name() string { return LoginSucceededName }

type LoginFailed struct {
	Message string
}

func (LoginFailed) Name() string { return LoginFailedName }

// UserJoined is the derived single-user notification sent to every session
// except the one that joined. The full-list broadcast remains the source of
// truth for presence.
type UserJoined struct {
	User domain.User
}

func (UserJoined) Name() string { return UserJoinedName }

type UserLeft struct {
	User domain.User
}

func (UserLeft) Name() string { return UserLeftName }

// UserListUpdated broadcasts the complete presence set to every connection.
type UserListUpdated struct {
	Users []domain.User
}

func (UserListUpdated) Name() string { return UserListUpdatedName }

// MessageDelivered routes one chat message to its recipient set.
type MessageDelivered struct {
	Message domain.Message
}

func (MessageDelivered) Name() string { return MessageDeliveredName }
