// Package cli wires configuration, local state and the gateway into the
// vouchers commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Koushikchikkond/vouchers/internal/config"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/gateway/offline"
	"github.com/Koushikchikkond/vouchers/internal/gateway/remote"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/storage"
)

// SetupLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and
// makes it the slog default. Logs go to w, never to command output.
func SetupLogger(cfg *config.Config, w io.Writer) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
		Format:    cfg.LogFormat,
		Output:    w,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// InitStateStore opens the local SQLite state, migrating it if needed.
func InitStateStore(logger *log.Logger, dbPath string) (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize local state", log.FieldError, err, "path", dbPath)
		return nil, err
	}
	return repo, nil
}

// NewGateway returns the HTTP gateway client, or the offline gateway when
// no real URL is configured.
func NewGateway(cfg *config.Config, logger *log.Logger) (gateway.Gateway, error) {
	if !cfg.GatewayConfigured() {
		logger.Warn("Gateway URL not configured, running offline: writes are not persisted")
		return offline.New(), nil
	}
	c, err := remote.New(cfg.APIURL, cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("create gateway client: %w", err)
	}
	logger.Debug("Using remote gateway", "timeout", cfg.HTTPTimeout)
	return c, nil
}

// GracefulShutdown waits for SIGINT/SIGTERM or for ctx to end, then runs
// cleanup with a deadline of timeout. The returned channel closes once
// cleanup has returned.
func GracefulShutdown(ctx context.Context, logger *log.Logger, timeout time.Duration, cleanup func(context.Context)) <-chan struct{} {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer stop()
		<-sigCtx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}

		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
			return
		}
		logger.Info("Shutdown complete")
	}()

	return done
}
