package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/namismyname/SocketTalk/contract"
	"github.com/namismyname/SocketTalk/observability"
	"github.com/namismyname/SocketTalk/services"
	"github.com/namismyname/SocketTalk/sink"
)

// Options are the transport-level knobs of one handler.
type Options struct {
	BufferSize     int
	MaxMessageSize int64
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	// CheckOrigin follows the gorilla contract; nil allows same-origin only.
	CheckOrigin func(r *http.Request) bool
}

// Handler upgrades connections and hands the resulting sessions to the
// services. It owns no session state itself: the registry is the single
// source of truth.
type Handler struct {
	log      *slog.Logger
	registry contract.IRegistry
	auth     services.IAuthService
	sessions services.ISessionService
	messages services.IMessageService
	stats    *observability.StatsManager
	upgrader websocket.Upgrader
	opts     Options
}

func NewHandler(
	log *slog.Logger,
	registry contract.IRegistry,
	auth services.IAuthService,
	sessions services.ISessionService,
	messages services.IMessageService,
	stats *observability.StatsManager,
	opts Options,
) *Handler {
	return &Handler{
		log:      log,
		registry: registry,
		auth:     auth,
		sessions: sessions,
		messages: messages,
		stats:    stats,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     opts.CheckOrigin,
		},
		opts: opts,
	}
}

// ServeWS upgrades the request and runs the connection to completion. The
// session id minted here doubles as the user's identity for the connection's
// lifetime. Teardown always runs leave-after-disconnect so presence
// broadcasts skip the closing socket.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}

	sessionID := uuid.NewString()
	snk := sink.NewWireSink(h.log, h.opts.BufferSize)
	h.registry.Connect(sessionID, snk)
	h.stats.IncrConnectionsOpened()
	h.log.Info("client connected", "session_id", sessionID, "remote_addr", r.RemoteAddr)

	client := newClient(h.log, conn, sessionID, snk, h)

	// The request context dies with the HTTP handler; dispatch work is tied
	// to the process instead.
	ctx := context.Background()

	go client.writePump()
	client.readPump(ctx)

	h.registry.Disconnect(sessionID)
	h.sessions.Leave(ctx, sessionID)
	close(client.done)
	h.stats.IncrConnectionsClosed()
}

// Health reports liveness plus the routing counters.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	payload := struct {
		Status string              `json:"status"`
		Joined int                 `json:"joined"`
		Stats  observability.Stats `json:"stats"`
	}{
		Status: "ok",
		Joined: h.registry.Size(),
		Stats:  h.stats.Snapshot(),
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Warn("health encoding failed", "error", err)
	}
}
