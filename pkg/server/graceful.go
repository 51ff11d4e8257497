// Package server runs an http.Handler with context-driven graceful
// shutdown and SIGHUP configuration reload.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dd0wney/ppinet/pkg/logging"
)

// ConfigReloadFunc is a function that reloads configuration
type ConfigReloadFunc func() error

// Timeouts bounds the phases of a connection and of shutdown
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Idle     time.Duration
	Shutdown time.Duration
}

// DefaultTimeouts returns the timeouts used when none are configured
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Read:     15 * time.Second,
		Write:    30 * time.Second,
		Idle:     120 * time.Second,
		Shutdown: 30 * time.Second,
	}
}

// GracefulServer wraps an HTTP server with graceful shutdown capabilities
type GracefulServer struct {
	server          *http.Server
	logger          logging.Logger
	shutdownTimeout time.Duration

	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	shutdownErr  error

	ready    chan struct{}
	listener net.Listener

	configReloadFn ConfigReloadFunc
	configMu       sync.RWMutex
}

// NewGracefulServer creates a new graceful HTTP server. Zero timeouts fall
// back to DefaultTimeouts.
func NewGracefulServer(addr string, handler http.Handler, timeouts Timeouts, logger logging.Logger) *GracefulServer {
	def := DefaultTimeouts()
	timeouts.Read = orDefault(timeouts.Read, def.Read)
	timeouts.Write = orDefault(timeouts.Write, def.Write)
	timeouts.Idle = orDefault(timeouts.Idle, def.Idle)
	timeouts.Shutdown = orDefault(timeouts.Shutdown, def.Shutdown)

	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &GracefulServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       timeouts.Read,
			ReadHeaderTimeout: timeouts.Read,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
			MaxHeaderBytes:    1 << 20,
		},
		logger:          logger.With(logging.Component("server")),
		shutdownTimeout: timeouts.Shutdown,
		shutdownCh:      make(chan struct{}),
		ready:           make(chan struct{}),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Run listens on the configured address and serves until ctx is cancelled
// or Shutdown is called. SIGHUP triggers ReloadConfig while running. Run
// returns nil after a clean shutdown.
func (gs *GracefulServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", gs.server.Addr)
	if err != nil {
		return err
	}
	gs.listener = ln

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	close(gs.ready)

	serveErr := make(chan error, 1)
	go func() {
		gs.logger.Info("HTTP server listening", logging.String("addr", ln.Addr().String()))
		serveErr <- gs.server.Serve(ln)
	}()

	for {
		select {
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return gs.shutdownErr
			}
			return err
		case <-hup:
			gs.logger.Info("received SIGHUP, reloading configuration")
			_ = gs.ReloadConfig()
		case <-ctx.Done():
			if err := gs.Shutdown(gs.shutdownTimeout); err != nil {
				return err
			}
		}
	}
}

// Addr returns the address the server is listening on. It blocks until Run
// has bound its listener.
func (gs *GracefulServer) Addr() string {
	<-gs.ready
	return gs.listener.Addr().String()
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests to finish. Only the first call has an effect.
func (gs *GracefulServer) Shutdown(timeout time.Duration) error {
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		gs.logger.Info("initiating graceful shutdown", logging.Duration("timeout", timeout))
		if err := gs.server.Shutdown(ctx); err != nil {
			gs.shutdownErr = err
			gs.logger.Error("error during shutdown", logging.Error(err))
			return
		}
		gs.logger.Info("server shutdown complete")
	})
	return gs.shutdownErr
}

// IsShuttingDown returns true if shutdown has been initiated
func (gs *GracefulServer) IsShuttingDown() bool {
	select {
	case <-gs.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownChannel returns a channel that closes when shutdown is initiated
func (gs *GracefulServer) ShutdownChannel() <-chan struct{} {
	return gs.shutdownCh
}

// SetConfigReloadFunc sets the function to call when configuration reload is triggered
func (gs *GracefulServer) SetConfigReloadFunc(fn ConfigReloadFunc) {
	gs.configMu.Lock()
	defer gs.configMu.Unlock()
	gs.configReloadFn = fn
}

// ReloadConfig triggers a configuration reload
func (gs *GracefulServer) ReloadConfig() error {
	gs.configMu.RLock()
	reloadFn := gs.configReloadFn
	gs.configMu.RUnlock()

	if reloadFn == nil {
		gs.logger.Warn("configuration reload requested, but no reload function configured")
		return nil
	}

	if err := reloadFn(); err != nil {
		gs.logger.Error("configuration reload failed", logging.Error(err))
		return err
	}

	gs.logger.Info("configuration reload complete")
	return nil
}
