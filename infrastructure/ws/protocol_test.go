package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/namismyname/SocketTalk/domain"
	"github.com/namismyname/SocketTalk/domain/event"
)

func TestToEnvelope_LoginAcknowledged(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	env, err := toEnvelope(event.LoginAcknowledged{SessionID: "session-1", At: at})
	req.NoError(err)
	req.Equal(event.LoginAcknowledgedName, env.Event)
	req.Nil(env.Ack)

	var payload LoginAckPayload
	req.NoError(json.Unmarshal(env.Data, &payload))
	req.Equal("received", payload.Status)
	req.Equal("session-1", payload.UserID)
	req.Equal("2026-03-14T09:26:53Z", payload.Timestamp)
}

func TestToEnvelope_LoginSucceeded(t *testing.T) {
	req := require.New(t)
	result := domain.JoinResult{
		Success:          true,
		Users:            []domain.User{{ID: "session-1", Username: "Alice"}},
		CurrentSessionID: "session-1",
		Username:         "Alice",
	}

	env, err := toEnvelope(event.LoginSucceeded{Result: result})
	req.NoError(err)
	req.Equal(event.LoginSucceededName, env.Event)

	var payload AuthJoinResponse
	req.NoError(json.Unmarshal(env.Data, &payload))
	req.True(payload.Success)
	req.Equal("session-1", payload.CurrentSessionID)
	req.Equal([]User{{ID: "session-1", Username: "Alice"}}, payload.Users)
}

func TestToEnvelope_LoginFailed(t *testing.T) {
	req := require.New(t)

	env, err := toEnvelope(event.LoginFailed{Message: "Invalid password."})
	req.NoError(err)
	req.Equal(event.LoginFailedName, env.Event)
	req.JSONEq(`{"message":"Invalid password."}`, string(env.Data))
}

func TestToEnvelope_Presence_Events(t *testing.T) {
	req := require.New(t)
	alice := domain.User{ID: "session-1", Username: "alice"}

	env, err := toEnvelope(event.UserJoined{User: alice})
	req.NoError(err)
	req.Equal(event.UserJoinedName, env.Event)
	req.JSONEq(`{"id":"session-1","username":"alice"}`, string(env.Data))

	env, err = toEnvelope(event.UserLeft{User: alice})
	req.NoError(err)
	req.Equal(event.UserLeftName, env.Event)

	env, err = toEnvelope(event.UserListUpdated{Users: []domain.User{alice}})
	req.NoError(err)
	req.Equal(event.UserListUpdatedName, env.Event)
	req.JSONEq(`[{"id":"session-1","username":"alice"}]`, string(env.Data))
}

func TestToEnvelope_MessageDelivered(t *testing.T) {
	req := require.New(t)
	msg := domain.Message{
		ID:             "2026-03-14T09:26:53Zabc1234",
		SenderID:       "session-1",
		SenderUsername: "alice",
		Text:           "hello",
		Timestamp:      "2026-03-14T09:26:53.000Z",
	}

	env, err := toEnvelope(event.MessageDelivered{Message: msg})
	req.NoError(err)
	req.Equal(event.MessageDeliveredName, env.Event)

	var payload Message
	req.NoError(json.Unmarshal(env.Data, &payload))
	req.Equal("alice", payload.SenderUsername)
	req.Empty(payload.RecipientID)

	// Group messages omit recipientId entirely on the wire
	req.NotContains(string(env.Data), "recipientId")
}

func TestToEnvelope_Reply_Passes_Through_Verbatim(t *testing.T) {
	req := require.New(t)
	ack := uint64(7)
	built, err := newEnvelope(EventRegisterUser, RegisterResponse{
		Success: true,
		Message: "Registration successful! You can now log in.",
	}, &ack)
	req.NoError(err)

	env, err := toEnvelope(reply{env: built})
	req.NoError(err)
	req.Equal(EventRegisterUser, env.Event)
	req.NotNil(env.Ack)
	req.Equal(uint64(7), *env.Ack)
}

func TestEnvelope_Decodes_Client_Requests(t *testing.T) {
	req := require.New(t)

	var env Envelope
	req.NoError(json.Unmarshal([]byte(`{"event":"send_message","data":{"text":"hi","timestamp":"2026-03-14T09:26:53.000Z"}}`), &env))
	req.Equal(EventSendMessage, env.Event)
	req.Nil(env.Ack)

	var payload SendMessagePayload
	req.NoError(json.Unmarshal(env.Data, &payload))
	req.Equal("hi", payload.Text)
	req.Empty(payload.RecipientID)
}
