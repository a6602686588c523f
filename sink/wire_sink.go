package sink

import (
	"context"
	"log/slog"

	"github.com/namismyname/SocketTalk/domain/event"
)

// WireSink buffers events bound for a single connection. The write pump owns
// the draining side of Events and is the only goroutine touching the socket.
type WireSink struct {
	Events chan event.DomainEvent
	log    *slog.Logger
}

func NewWireSink(log *slog.Logger, bufferSize int) *WireSink {
	return &WireSink{
		Events: make(chan event.DomainEvent, bufferSize),
		log:    log,
	}
}

// Consume is called by the routing side.
// Redirect the event through the concerned owner of the channel.
// A full buffer drops the event rather than blocking the router: delivery is
// best effort over an open connection, nothing is queued beyond the buffer.
func (s *WireSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.log.Warn("connection buffer full, event dropped", "event", e.Name())
		return nil
	}
}
