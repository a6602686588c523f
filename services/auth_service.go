//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/namismyname/SocketTalk/auth"
	"github.com/namismyname/SocketTalk/contract"
	"github.com/namismyname/SocketTalk/domain"
	"github.com/namismyname/SocketTalk/domain/event"
	"github.com/namismyname/SocketTalk/errors"
	"github.com/namismyname/SocketTalk/repositories"
)

type IAuthService interface {
	Register(username, secret string) domain.RegisterResult
	Login(ctx context.Context, sessionID, username, secret string, sink contract.EventSink)
	Rejoin(ctx context.Context, sessionID, username string) domain.JoinResult
}

type AuthService struct {
	log         *slog.Logger
	credentials repositories.ICredentialRepository
	sessions    ISessionService
}

func NewAuthService(log *slog.Logger, credentials repositories.ICredentialRepository,
	sessions ISessionService) IAuthService {
	return &AuthService{log: log, credentials: credentials, sessions: sessions}
}

// Register is a plain request/response: the caller gets the result directly,
// no separate event. Validation and the taken-check both happen inside the
// repository so a failed attempt leaves no trace.
func (s *AuthService) Register(username, secret string) domain.RegisterResult {
	cred, err := s.credentials.Register(username, secret)
	switch {
	case stderrors.Is(err, errors.ErrEmptyCredentials):
		return domain.RegisterResult{Success: false, Message: "Username and password cannot be empty."}
	case stderrors.Is(err, errors.ErrUsernameTaken):
		return domain.RegisterResult{
			Success: false,
			Message: fmt.Sprintf("Username %q is already taken.", strings.TrimSpace(username)),
		}
	case err != nil:
		s.log.Error("registration failed", "error", err)
		return domain.RegisterResult{Success: false, Message: "An unexpected server error occurred during registration."}
	}

	s.log.Info("user registered", "username", cred.Username)
	return domain.RegisterResult{
		Success:  true,
		Message:  "Registration successful! You can now log in.",
		Username: cred.Username,
	}
}

// Login runs the three-event handshake: an immediate acknowledgement, then
// exactly one of login_success or login_failed on the caller's sink. The
// acknowledgement is a heartbeat, not a verdict, and is emitted before any
// validation work. The caller may have long given up (its timeout is local);
// emitting into a closed connection's sink is harmless.
func (s *AuthService) Login(ctx context.Context, sessionID, username, secret string, sink contract.EventSink) {
	if err := sink.Consume(ctx, event.LoginAcknowledged{SessionID: sessionID, At: time.Now().UTC()}); err != nil {
		s.log.Warn("failed to acknowledge login attempt", "session_id", sessionID, "error", err)
	}

	if err := auth.ValidateCredentials(username, secret); err != nil {
		s.fail(ctx, sink, sessionID, "Username and password are required.")
		return
	}

	trimmed := strings.TrimSpace(username)
	cred, err := s.credentials.Lookup(trimmed)
	switch {
	case stderrors.Is(err, errors.ErrUserNotFound):
		s.fail(ctx, sink, sessionID, "User not found. Please register or check your username.")
		return
	case err != nil:
		s.log.Error("credential lookup failed", "session_id", sessionID, "error", err)
		s.fail(ctx, sink, sessionID, "An unexpected server error occurred during login. Please try again later.")
		return
	}

	if cred.Secret != secret {
		s.log.Warn("invalid password", "session_id", sessionID, "username", trimmed)
		s.fail(ctx, sink, sessionID, "Invalid password.")
		return
	}

	// Credentials hold. The join result carries the stored original-case
	// username, whatever case the login request used.
	result := s.sessions.Join(ctx, sessionID, cred.Username)
	if !result.Success {
		message := result.Error
		if message == "" {
			message = "Failed to join chat after login."
		}
		s.fail(ctx, sink, sessionID, message)
		return
	}

	if err := sink.Consume(ctx, event.LoginSucceeded{Result: result}); err != nil {
		s.log.Warn("login_success not delivered", "session_id", sessionID, "error", err)
	}
}

// Rejoin re-establishes presence for a session whose identity the caller
// already trusts: no credential check, only the username emptiness guard.
func (s *AuthService) Rejoin(ctx context.Context, sessionID, username string) domain.JoinResult {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return domain.JoinResult{
			Success:  false,
			Error:    "Username cannot be empty.",
			Username: username,
		}
	}
	return s.sessions.Join(ctx, sessionID, trimmed)
}

func (s *AuthService) fail(ctx context.Context, sink contract.EventSink, sessionID, message string) {
	if err := sink.Consume(ctx, event.LoginFailed{Message: message}); err != nil {
		s.log.Warn("login_failed not delivered", "session_id", sessionID, "error", err)
	}
}
