package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hushbox/hushauth/config"
)

// Daemon is a long running component with a lifecycle tied to the server,
// started after the listener and stopped during graceful shutdown.
type Daemon interface {
	Name() string
	Start() error
	Stop(ctx context.Context) error
}

// Server runs the HTTP listener and the registered daemons until a shutdown
// signal arrives. SIGHUP triggers the reload func instead of a shutdown.
type Server struct {
	configProvider *config.Provider
	handler        http.Handler
	logger         *slog.Logger
	reloadFunc     func() error
	daemons        []Daemon

	// exitFunc is swapped out in tests.
	exitFunc func(code int)
}

func NewServer(provider *config.Provider, handler http.Handler, logger *slog.Logger, reloadFunc func() error) *Server {
	return &Server{
		configProvider: provider,
		handler:        handler,
		logger:         logger,
		reloadFunc:     reloadFunc,
		exitFunc:       os.Exit,
	}
}

// AddDaemon registers a daemon. Daemons start in registration order and stop
// concurrently during shutdown.
func (s *Server) AddDaemon(d Daemon) {
	s.daemons = append(s.daemons, d)
}

func (s *Server) Run() {
	cfg := s.configProvider.Get().Server

	s.logger.Info("server configuration",
		"addr", cfg.Addr,
		"read_timeout", cfg.ReadTimeout.Duration,
		"read_header_timeout", cfg.ReadHeaderTimeout.Duration,
		"write_timeout", cfg.WriteTimeout.Duration,
		"idle_timeout", cfg.IdleTimeout.Duration,
		"shutdown_timeout", cfg.ShutdownGracefulTimeout.Duration,
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
	}

	serverError := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	started, err := s.startDaemons()
	if err != nil {
		s.logger.Error("daemon startup failed, shutting down", "error", err)
		s.shutdown(srv, started, cfg.ShutdownGracefulTimeout.Duration)
		s.exitFunc(1)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	exitCode := 0
loop:
	for {
		select {
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				s.logger.Info("received SIGHUP, reloading configuration")
				if err := s.reloadFunc(); err != nil {
					s.logger.Error("configuration reload failed, keeping previous", "error", err)
				}
				continue
			}
			s.logger.Info("received shutdown signal", "signal", sig)
			break loop
		case err := <-serverError:
			s.logger.Error("http server error, initiating shutdown", "error", err)
			exitCode = 1
			break loop
		}
	}

	if err := s.shutdown(srv, started, cfg.ShutdownGracefulTimeout.Duration); err != nil {
		s.exitFunc(1)
		return
	}

	s.logger.Info("all systems stopped gracefully")
	s.exitFunc(exitCode)
}

// startDaemons starts each daemon in order and returns the ones that came up,
// so a partial start can be rolled back.
func (s *Server) startDaemons() ([]Daemon, error) {
	var started []Daemon
	for _, d := range s.daemons {
		s.logger.Info("starting daemon", "daemon", d.Name())
		if err := d.Start(); err != nil {
			return started, err
		}
		started = append(started, d)
	}
	return started, nil
}

func (s *Server) shutdown(srv *http.Server, daemons []Daemon, timeout time.Duration) error {
	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	group, _ := errgroup.WithContext(gracefulCtx)

	group.Go(func() error {
		s.logger.Info("shutting down http server")
		if err := srv.Shutdown(gracefulCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
			return err
		}
		return nil
	})

	for _, d := range daemons {
		group.Go(func() error {
			s.logger.Info("stopping daemon", "daemon", d.Name())
			if err := d.Stop(gracefulCtx); err != nil {
				s.logger.Error("daemon shutdown error", "daemon", d.Name(), "error", err)
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		s.logger.Error("error during shutdown", "error", err)
		return err
	}
	return nil
}
