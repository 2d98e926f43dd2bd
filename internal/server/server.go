// Package server holds the process plumbing shared by the quiz and job board binaries.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	dbfs "github.com/garnizeh/boards/db"
	"github.com/garnizeh/boards/internal/config"
	"github.com/garnizeh/boards/internal/db"
)

const shutdownGrace = 30 * time.Second

// OpenDatabase opens the configured database and, when MigrateOnStart is set,
// applies the migrations of app ("quiz" or "jobboard").
func OpenDatabase(ctx context.Context, cfg *config.Config, app string, logger *slog.Logger) (*db.DB, error) {
	dir, ok := dbfs.Dir(app)
	if !ok {
		return nil, fmt.Errorf("unknown app %q", app)
	}

	d, err := db.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, d, dbfs.Migrations, dir); err != nil {
			d.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return d, nil
}

// Run listens on cfg.Addr and serves h until ctx is done.
func Run(ctx context.Context, cfg *config.Config, h http.Handler, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}

	return Serve(ctx, ln, cfg.APITimeout, h, logger)
}

// Serve serves h on ln until ctx is done, then gives outstanding requests
// shutdownGrace to complete.
func Serve(ctx context.Context, ln net.Listener, timeout time.Duration, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:      h,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
