// Package server wires the stand-in diary API: in-memory repositories,
// services, the chi router and an HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/server/config"
	"github.com/dmitrijs2005/gophdiary/internal/server/handlers"
	"github.com/dmitrijs2005/gophdiary/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophdiary/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config       *config.Config
	logger       logging.Logger
	userService  *services.UserService
	diaryService *services.DiaryService
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	m := repomanager.NewInMemoryRepositoryManager()

	us := services.NewUserService(m, cfg, logger)
	ds := services.NewDiaryService(m, logger)

	if cfg.SeedDemoUsers {
		if err := us.SeedDemoUsers(ctx); err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
	}

	return &App{config: cfg, logger: logger, userService: us, diaryService: ds}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address until ctx is done or the process
// receives SIGINT/SIGTERM.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Address, err)
	}
	return app.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is done, then drains in-flight
// requests for up to shutdownTimeout.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           handlers.NewRouter(ctx, app.config, app.userService, app.diaryService, app.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "server starting", "addr", ln.Addr().String(), "env", app.config.Env)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	app.logger.Info(context.Background(), "server stopped")
	return nil
}
