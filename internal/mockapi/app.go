package mockapi

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

	"github.com/dmitrijs2005/aideasy/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *Config
	logger logging.Logger
	server *Server
}

func NewApp(cfg *Config) (*App, error) {
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	store := NewStore(newID())
	if cfg.Seed {
		if err := Seed(store, time.Now(), time.Local); err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	srv := NewServer(store, NewSessions(store, cfg), logger.With("module", "mockapi"))
	return &App{config: cfg, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Serve runs the HTTP server on l until ctx is done.
func (app *App) Serve(ctx context.Context, l net.Listener) error {
	hs := &http.Server{
		Handler:           app.server.Handler(app.config.BasePath),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- hs.Serve(l)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String(), "base_path", app.config.BasePath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

// Run listens on the configured address and blocks until a signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	l, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	}
	return app.Serve(ctx, l)
}
