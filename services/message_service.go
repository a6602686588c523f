//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/namismyname/SocketTalk/contract"
	"github.com/namismyname/SocketTalk/domain"
	"github.com/namismyname/SocketTalk/domain/event"
	"github.com/namismyname/SocketTalk/observability"
)

type IMessageService interface {
	Send(ctx context.Context, sessionID, text, recipientID, timestamp string)
}

// MessageService resolves a send request against the registry and delivers
// to the correct session set. Fire-and-forget: no acknowledgment, no retry,
// no queuing for absent recipients.
type MessageService struct {
	log      *slog.Logger
	registry contract.IRegistry
	stats    *observability.StatsManager
}

func NewMessageService(log *slog.Logger, registry contract.IRegistry,
	stats *observability.StatsManager) *MessageService {
	return &MessageService{log: log, registry: registry, stats: stats}
}

// Send routes one message. A sender absent from the registry (never joined,
// or already disconnected by a racing leave) drops the message with a log
// line and no feedback to the caller.
func (s *MessageService) Send(ctx context.Context, sessionID, text, recipientID, timestamp string) {
	sender, ok := s.registry.Lookup(sessionID)
	if !ok {
		s.stats.IncrMessagesDropped()
		s.log.Warn("message from unauthenticated sender dropped", "session_id", sessionID)
		return
	}

	msg := domain.Message{
		ID:             domain.NewMessageID(time.Now()),
		SenderID:       sessionID,
		SenderUsername: sender.Username,
		RecipientID:    recipientID,
		Text:           text,
		Timestamp:      timestamp,
	}
	evt := event.MessageDelivered{Message: msg}

	if msg.Direct() {
		// Echo to self so the sender's own view reflects the message, then
		// the recipient. A recipient that is not connected is skipped: no
		// error, no queuing.
		s.deliverTo(ctx, sessionID, evt)
		if recipientID != sessionID {
			s.deliverTo(ctx, recipientID, evt)
		}
	} else {
		for _, sink := range s.registry.Sinks() {
			if err := sink.Consume(ctx, evt); err != nil {
				s.log.Warn("group message not delivered", "message_id", msg.ID, "error", err)
			}
		}
	}

	s.stats.IncrMessagesRouted()
	s.log.Debug("message routed", "message_id", msg.ID, "sender", sender.Username,
		"direct", msg.Direct())
}

func (s *MessageService) deliverTo(ctx context.Context, sessionID string, evt event.MessageDelivered) {
	sink, ok := s.registry.SinkFor(sessionID)
	if !ok {
		return
	}
	if err := sink.Consume(ctx, evt); err != nil {
		s.log.Warn("direct message not delivered", "session_id", sessionID, "error", err)
	}
}
