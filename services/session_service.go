//go:generate go run go.uber.org/mock/mockgen -source=session_service.go -destination=../mocks/mock_session_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/namismyname/SocketTalk/contract"
	"github.com/namismyname/SocketTalk/domain"
	"github.com/namismyname/SocketTalk/domain/event"
	"github.com/namismyname/SocketTalk/observability"
)

type ISessionService interface {
	Join(ctx context.Context, sessionID, username string) domain.JoinResult
	Leave(ctx context.Context, sessionID string)
}

// SessionService owns the join/leave transitions and the presence broadcasts
// they trigger. The individual user_joined/user_left notifications are
// derived extras; user_list_update is the source of truth and always carries
// the full current set.
type SessionService struct {
	log      *slog.Logger
	registry contract.IRegistry
	stats    *observability.StatsManager
}

func NewSessionService(log *slog.Logger, registry contract.IRegistry,
	stats *observability.StatsManager) *SessionService {
	return &SessionService{log: log, registry: registry, stats: stats}
}

// Join binds the session to the username and broadcasts presence when
// anything actually changed. A valid, non-empty session id is a precondition
// the transport establishes; an empty one is reported as a join failure and
// never crashes the process.
func (s *SessionService) Join(ctx context.Context, sessionID, username string) domain.JoinResult {
	if strings.TrimSpace(sessionID) == "" {
		s.log.Error("join attempted with invalid session id", "username", username)
		return domain.JoinResult{
			Success:  false,
			Error:    "User session ID is invalid.",
			Username: username,
			Users:    []domain.User{},
		}
	}

	change := s.registry.Join(sessionID, username)

	if change.NewJoin {
		s.stats.IncrJoins()
		s.log.Info("user joined", "session_id", sessionID, "username", username,
			"connected", len(change.Users))
		// The joiner learns about itself from the join result, not from
		// its own user_joined notification.
		s.emit(ctx, s.registry.SinksExcept(sessionID), event.UserJoined{User: change.User})
	}
	if change.Changed {
		if !change.NewJoin {
			s.log.Info("session changed username", "session_id", sessionID, "username", username)
		}
		s.emit(ctx, s.registry.Sinks(), event.UserListUpdated{Users: change.Users})
	}

	return domain.JoinResult{
		Success:          true,
		Users:            change.Users,
		CurrentSessionID: sessionID,
		Username:         username,
	}
}

// Leave removes the session from presence and rebroadcasts the shrunk set.
// Disconnect of a never-joined session is a no-op, not an error.
func (s *SessionService) Leave(ctx context.Context, sessionID string) {
	user, users, ok := s.registry.Remove(sessionID)
	if !ok {
		s.log.Debug("disconnect for session that never joined", "session_id", sessionID)
		return
	}

	s.stats.IncrLeaves()
	s.log.Info("user left", "session_id", sessionID, "username", user.Username,
		"connected", len(users))

	sinks := s.registry.Sinks()
	s.emit(ctx, sinks, event.UserLeft{User: user})
	s.emit(ctx, sinks, event.UserListUpdated{Users: users})
}

func (s *SessionService) emit(ctx context.Context, sinks []contract.EventSink, e event.DomainEvent) {
	for _, sink := range sinks {
		if err := sink.Consume(ctx, e); err != nil {
			s.log.Warn("presence event not delivered", "event", e.Name(), "error", err)
		}
	}
}
