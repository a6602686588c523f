// Package ws implements the event protocol over one websocket per client.
// Client requests and server events share a single JSON envelope shape:
//
//	{"event": <name>, "data": <payload>, "ack": <id>}
//
// Request/response events (register_user, join_chat) carry an ack id; the
// reply reuses the request's event name and echoes the id. Fire-and-forget
// events (login_user, send_message) never carry one — login answers arrive
// as the three-event handshake instead.
package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/namismyname/SocketTalk/domain"
	"github.com/namismyname/SocketTalk/domain/event"
)

// Client-to-server event names.
const (
	EventRegisterUser = "register_user"
	EventLoginUser    = "login_user"
	EventJoinChat     = "join_chat"
	EventSendMessage  = "send_message"
)

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	Ack   *uint64         `json:"ack,omitempty"`
}

// CredentialsPayload is the register_user / login_user request body.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type JoinChatPayload struct {
	Username string `json:"username"`
}

type SendMessagePayload struct {
	Text        string `json:"text"`
	RecipientID string `json:"recipientId,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Message struct {
	ID             string `json:"id"`
	SenderID       string `json:"senderId"`
	SenderUsername string `json:"senderUsername"`
	RecipientID    string `json:"recipientId,omitempty"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
}

type RegisterResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}

type AuthJoinResponse struct {
	Success          bool   `json:"success"`
	Users            []User `json:"users"`
	CurrentSessionID string `json:"currentSessionId,omitempty"`
	Username         string `json:"username,omitempty"`
	Error            string `json:"error,omitempty"`
}

type LoginAckPayload struct {
	Status    string `json:"status"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
}

type LoginFailedPayload struct {
	Message string `json:"message"`
}

func toUser(u domain.User) User {
	return User{ID: u.ID, Username: u.Username}
}

func toUsers(users []domain.User) []User {
	return lo.Map(users, func(u domain.User, _ int) User {
		return toUser(u)
	})
}

func toMessage(m domain.Message) Message {
	return Message{
		ID:             m.ID,
		SenderID:       m.SenderID,
		SenderUsername: m.SenderUsername,
		RecipientID:    m.RecipientID,
		Text:           m.Text,
		Timestamp:      m.Timestamp,
	}
}

func toAuthJoinResponse(r domain.JoinResult) AuthJoinResponse {
	return AuthJoinResponse{
		Success:          r.Success,
		Users:            toUsers(r.Users),
		CurrentSessionID: r.CurrentSessionID,
		Username:         r.Username,
		Error:            r.Error,
	}
}

func newEnvelope(name string, payload any, ack *uint64) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", name, err)
	}
	return Envelope{Event: name, Data: data, Ack: ack}, nil
}

// reply wraps an already-built envelope so request/response answers travel
// through the same sink channel as server events: the write pump stays the
// only socket writer.
type reply struct {
	env Envelope
}

func (r reply) Name() string { return r.env.Event }

// toEnvelope translates a domain event into its wire envelope.
func toEnvelope(e event.DomainEvent) (Envelope, error) {
	switch evt := e.(type) {
	case reply:
		return evt.env, nil
	case event.LoginAcknowledged:
		return newEnvelope(evt.Name(), LoginAckPayload{
			Status:    "received",
			UserID:    evt.SessionID,
			Timestamp: evt.At.UTC().Format(time.RFC3339Nano),
		}, nil)
	case event.LoginSucceeded:
		return newEnvelope(evt.Name(), toAuthJoinResponse(evt.Result), nil)
	case event.LoginFailed:
		return newEnvelope(evt.Name(), LoginFailedPayload{Message: evt.Message}, nil)
	case event.UserJoined:
		return newEnvelope(evt.Name(), toUser(evt.User), nil)
	case event.UserLeft:
		return newEnvelope(evt.Name(), toUser(evt.User), nil)
	case event.UserListUpdated:
		return newEnvelope(evt.Name(), toUsers(evt.Users), nil)
	case event.MessageDelivered:
		return newEnvelope(evt.Name(), toMessage(evt.Message), nil)
	default:
		return Envelope{}, fmt.Errorf("no wire mapping for event %q", e.Name())
	}
}
