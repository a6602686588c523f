package services_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/namismyname/SocketTalk/domain"
	"github.com/namismyname/SocketTalk/domain/event"
	"github.com/namismyname/SocketTalk/errors"
	"github.com/namismyname/SocketTalk/mocks"
	"github.com/namismyname/SocketTalk/repositories"
	"github.com/namismyname/SocketTalk/services"
	"github.com/namismyname/SocketTalk/sink"
)

func TestAuthService_Register(t *testing.T) {
	t.Run("should confirm a successful registration", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)

		credentials.EXPECT().Register("Alice", "s3cret").
			Return(repositories.Credential{Username: "Alice", Secret: "s3cret"}, nil)

		result := service.Register("Alice", "s3cret")

		req.True(result.Success)
		req.Equal("Registration successful! You can now log in.", result.Message)
		req.Equal("Alice", result.Username)
	})

	t.Run("should report a taken username with the trimmed name", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)

		credentials.EXPECT().Register("  Alice  ", "s3cret").
			Return(repositories.Credential{}, errors.ErrUsernameTaken)

		result := service.Register("  Alice  ", "s3cret")

		req.False(result.Success)
		req.Equal(`Username "Alice" is already taken.`, result.Message)
	})

	t.Run("should reject empty credentials", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)

		credentials.EXPECT().Register("", "").
			Return(repositories.Credential{}, errors.ErrEmptyCredentials)

		result := service.Register("", "")

		req.False(result.Success)
		req.Equal("Username and password cannot be empty.", result.Message)
	})

	t.Run("should mask unexpected storage errors", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)

		credentials.EXPECT().Register("Alice", "s3cret").
			Return(repositories.Credential{}, fmt.Errorf("disk on fire"))

		result := service.Register("Alice", "s3cret")

		req.False(result.Success)
		req.Equal("An unexpected server error occurred during registration.", result.Message)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("should acknowledge then succeed with the stored username case", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)
		sessionID := uuid.NewString()
		timeline := sink.NewTimeline("alice")

		credentials.EXPECT().Lookup("alice").
			Return(repositories.Credential{Username: "Alice", Secret: "s3cret"}, nil)
		sessions.EXPECT().Join(ctx, sessionID, "Alice").
			Return(domain.JoinResult{
				Success:          true,
				Users:            []domain.User{{ID: sessionID, Username: "Alice"}},
				CurrentSessionID: sessionID,
				Username:         "Alice",
			})

		service.Login(ctx, sessionID, "alice", "s3cret", timeline)

		events := timeline.Events()
		req.Len(events, 2)

		ack, ok := events[0].(event.LoginAcknowledged)
		req.True(ok, "first event must be the acknowledgement")
		req.Equal(sessionID, ack.SessionID)

		success, ok := events[1].(event.LoginSucceeded)
		req.True(ok, "second event must be login_success")
		req.Equal("Alice", success.Result.Username)
		req.Equal(sessionID, success.Result.CurrentSessionID)
	})

	t.Run("should acknowledge then fail for an unknown user", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)
		timeline := sink.NewTimeline("nobody")

		credentials.EXPECT().Lookup("nobody").
			Return(repositories.Credential{}, errors.ErrUserNotFound)

		service.Login(ctx, uuid.NewString(), "nobody", "s3cret", timeline)

		events := timeline.Events()
		req.Len(events, 2)
		req.Equal(event.LoginAcknowledgedName, events[0].Name())
		failed, ok := events[1].(event.LoginFailed)
		req.True(ok)
		req.Equal("User not found. Please register or check your username.", failed.Message)
	})

	t.Run("should fail on a wrong password without joining", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)
		timeline := sink.NewTimeline("alice")

		credentials.EXPECT().Lookup("alice").
			Return(repositories.Credential{Username: "Alice", Secret: "s3cret"}, nil)

		service.Login(ctx, uuid.NewString(), "alice", "wrong", timeline)

		events := timeline.Events()
		req.Len(events, 2)
		failed, ok := events[1].(event.LoginFailed)
		req.True(ok)
		req.Equal("Invalid password.", failed.Message)
	})

	t.Run("should fail on missing credentials before any lookup", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)
		timeline := sink.NewTimeline("anon")

		service.Login(ctx, uuid.NewString(), "   ", "", timeline)

		events := timeline.Events()
		req.Len(events, 2)
		failed, ok := events[1].(event.LoginFailed)
		req.True(ok)
		req.Equal("Username and password are required.", failed.Message)
	})

	t.Run("should surface a join failure as login_failed", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)
		sessionID := uuid.NewString()
		timeline := sink.NewTimeline("alice")

		credentials.EXPECT().Lookup("alice").
			Return(repositories.Credential{Username: "Alice", Secret: "s3cret"}, nil)
		sessions.EXPECT().Join(ctx, sessionID, "Alice").
			Return(domain.JoinResult{Success: false})

		service.Login(ctx, sessionID, "alice", "s3cret", timeline)

		events := timeline.Events()
		req.Len(events, 2)
		failed, ok := events[1].(event.LoginFailed)
		req.True(ok)
		req.Equal("Failed to join chat after login.", failed.Message)
	})
}

func TestAuthService_Rejoin(t *testing.T) {
	ctx := context.Background()

	t.Run("should delegate to the session service with the trimmed name", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)
		sessionID := uuid.NewString()

		sessions.EXPECT().Join(ctx, sessionID, "Alice").
			Return(domain.JoinResult{Success: true, Username: "Alice"})

		result := service.Rejoin(ctx, sessionID, "  Alice  ")

		req.True(result.Success)
		req.Equal("Alice", result.Username)
	})

	t.Run("should reject an empty username without touching the session", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		credentials := mocks.NewMockICredentialRepository(ctrl)
		sessions := mocks.NewMockISessionService(ctrl)
		service := services.NewAuthService(slog.Default(), credentials, sessions)

		result := service.Rejoin(ctx, uuid.NewString(), "   ")

		req.False(result.Success)
		req.Equal("Username cannot be empty.", result.Error)
	})
}
