package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"github.com/namismyname/SocketTalk/errors"
	"github.com/namismyname/SocketTalk/infrastructure/ws"
	"github.com/namismyname/SocketTalk/internal"
	"github.com/namismyname/SocketTalk/observability"
	"github.com/namismyname/SocketTalk/repositories"
	"github.com/namismyname/SocketTalk/runtime"
	"github.com/namismyname/SocketTalk/runtime/workers"
	"github.com/namismyname/SocketTalk/services"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer (database close, graceful
// shutdown) executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := internal.GetLoggerFromString(config.LogLevel)

	// 2. Credential store (BadgerDB, in-memory)
	// Nothing outlives the process: a restart discards every registered
	// user and all presence, which is the intended model.
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return exitRuntime, fmt.Errorf("credential store opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing credential store...")
		_ = db.Close()
	}()

	credentials := repositories.NewCredentialRepository(db)
	if _, err := credentials.Register(config.SeedUsername, config.SeedPassword); err != nil {
		if !stderrors.Is(err, errors.ErrUsernameTaken) {
			return exitRuntime, fmt.Errorf("seeding default account failed: %w", err)
		}
	} else {
		logger.Info("Pre-seeded default account", "username", config.SeedUsername)
	}

	// 3. Registry, services, stats
	registry := runtime.NewRegistry()
	stats := observability.NewStatsManager()
	sessionService := services.NewSessionService(logger, registry, stats)
	authService := services.NewAuthService(logger, credentials, sessionService)
	messageService := services.NewMessageService(logger, registry, stats)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Background workers under supervision
	supervisor := workers.NewSupervisor(logger, config.RestartInterval)
	supervisor.Add(workers.NewHeartbeatWorker(logger, registry, stats, config.HeartbeatInterval))
	go supervisor.Run(ctx)

	// 6. HTTP server with the websocket endpoint
	var checkOrigin func(*http.Request) bool
	if config.AllowAllOrigins {
		checkOrigin = func(*http.Request) bool { return true }
	}

	handler := ws.NewHandler(logger, registry, authService, sessionService, messageService, stats,
		ws.Options{
			BufferSize:     config.ConnectionBufferSize,
			MaxMessageSize: config.MaxMessageSize,
			WriteTimeout:   config.WriteTimeout,
			PongTimeout:    config.PongTimeout,
			PingInterval:   config.PingInterval,
			CheckOrigin:    checkOrigin,
		})

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:    address,
		Handler: ws.NewRouter(handler),
	}

	// Use an error channel to capture Serve() issues asynchronously.
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Final Cleanup (Graceful Shutdown)
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown incomplete", "error", err)
	}
	supervisor.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}
