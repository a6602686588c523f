package ws

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter mounts the websocket endpoint and the health check.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.ServeWS).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	return r
}
