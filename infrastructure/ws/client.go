package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/namismyname/SocketTalk/domain/event"
	"github.com/namismyname/SocketTalk/sink"
)

// Client is one upgraded connection. The read pump parses envelopes and
// dispatches them; the write pump drains the sink and is the only goroutine
// writing to the socket.
type Client struct {
	log       *slog.Logger
	conn      *websocket.Conn
	sessionID string
	sink      *sink.WireSink
	handler   *Handler
	done      chan struct{}
}

func newClient(log *slog.Logger, conn *websocket.Conn, sessionID string,
	snk *sink.WireSink, handler *Handler) *Client {
	return &Client{
		log:       log,
		conn:      conn,
		sessionID: sessionID,
		sink:      snk,
		handler:   handler,
		done:      make(chan struct{}),
	}
}

func (c *Client) readPump(ctx context.Context) {
	opts := c.handler.opts
	c.conn.SetReadLimit(opts.MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(opts.PongTimeout)); err != nil {
		c.log.Warn("failed to set read deadline", "error", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(opts.PongTimeout))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.log.Warn("unexpected close", "session_id", c.sessionID, "error", err)
			} else {
				c.log.Info("client disconnected", "session_id", c.sessionID, "reason", err)
			}
			return
		}
		c.dispatch(ctx, raw)
	}
}

func (c *Client) writePump() {
	opts := c.handler.opts
	ticker := time.NewTicker(opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case e := <-c.sink.Events:
			env, err := toEnvelope(e)
			if err != nil {
				c.log.Error("event not encodable", "event", e.Name(), "error", err)
				continue
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout)); err != nil {
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				c.log.Warn("write failed", "session_id", c.sessionID, "error", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dispatch routes one inbound envelope. A fault inside a handler is caught
// at this boundary: answered where a response channel exists, otherwise
// logged, and the connection stays open either way.
func (c *Client) dispatch(ctx context.Context, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.Warn("malformed envelope ignored", "session_id", c.sessionID, "error", err)
		return
	}

	switch env.Event {
	case EventRegisterUser:
		c.handleRegister(ctx, env)
	case EventLoginUser:
		c.handleLogin(ctx, env)
	case EventJoinChat:
		c.handleJoinChat(ctx, env)
	case EventSendMessage:
		c.handleSendMessage(ctx, env)
	default:
		c.log.Warn("unknown event ignored", "session_id", c.sessionID, "event", env.Event)
	}
}

func (c *Client) handleRegister(ctx context.Context, env Envelope) {
	if env.Ack == nil {
		c.log.Error("register_user without ack id, attempt aborted", "session_id", c.sessionID)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("panic in register_user handler", "session_id", c.sessionID, "panic", r)
			c.reply(ctx, EventRegisterUser, env.Ack, RegisterResponse{
				Success: false,
				Message: "An unexpected server error occurred during registration.",
			})
		}
	}()

	var p CredentialsPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		c.reply(ctx, EventRegisterUser, env.Ack, RegisterResponse{
			Success: false,
			Message: "Username and password cannot be empty.",
		})
		return
	}

	result := c.handler.auth.Register(p.Username, p.Password)
	c.reply(ctx, EventRegisterUser, env.Ack, RegisterResponse{
		Success:  result.Success,
		Message:  result.Message,
		Username: result.Username,
	})
}

func (c *Client) handleLogin(ctx context.Context, env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("panic in login_user handler", "session_id", c.sessionID, "panic", r)
			fenv, err := newEnvelope(event.LoginFailedName, LoginFailedPayload{
				Message: "An unexpected server error occurred during login. Please try again later.",
			}, nil)
			if err == nil {
				_ = c.sink.Consume(ctx, reply{env: fenv})
			}
		}
	}()

	var p CredentialsPayload
	// A payload that does not even parse is treated like missing fields;
	// the acknowledged/failed handshake still runs.
	_ = json.Unmarshal(env.Data, &p)

	c.handler.auth.Login(ctx, c.sessionID, p.Username, p.Password, c.sink)
}

func (c *Client) handleJoinChat(ctx context.Context, env Envelope) {
	if env.Ack == nil {
		c.log.Error("join_chat without ack id, attempt aborted", "session_id", c.sessionID)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("panic in join_chat handler", "session_id", c.sessionID, "panic", r)
			c.reply(ctx, EventJoinChat, env.Ack, AuthJoinResponse{
				Success: false,
				Error:   "Failed to join chat.",
			})
		}
	}()

	var p JoinChatPayload
	_ = json.Unmarshal(env.Data, &p)

	result := c.handler.auth.Rejoin(ctx, c.sessionID, p.Username)
	c.reply(ctx, EventJoinChat, env.Ack, toAuthJoinResponse(result))
}

func (c *Client) handleSendMessage(ctx context.Context, env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("panic in send_message handler", "session_id", c.sessionID, "panic", r)
		}
	}()

	var p SendMessagePayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		c.log.Warn("malformed send_message payload ignored", "session_id", c.sessionID, "error", err)
		return
	}

	c.handler.messages.Send(ctx, c.sessionID, p.Text, p.RecipientID, p.Timestamp)
}

// reply answers a request/response event on the caller's own connection,
// echoing the request's ack id.
func (c *Client) reply(ctx context.Context, eventName string, ack *uint64, payload any) {
	env, err := newEnvelope(eventName, payload, ack)
	if err != nil {
		c.log.Error("reply not encodable", "event", eventName, "error", err)
		return
	}
	if err := c.sink.Consume(ctx, reply{env: env}); err != nil {
		c.log.Warn("reply not delivered", "event", eventName, "error", err)
	}
}
