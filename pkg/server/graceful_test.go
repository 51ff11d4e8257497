package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
}

func startServer(t *testing.T, gs *GracefulServer) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Run(ctx) }()
	return cancel, done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
		return nil
	}
}

func TestGracefulServer_ServesAndStopsOnCancel(t *testing.T) {
	gs := NewGracefulServer("127.0.0.1:0", okHandler(), Timeouts{}, nil)
	cancel, done := startServer(t, gs)

	resp, err := http.Get("http://" + gs.Addr() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	assert.NoError(t, waitDone(t, done))
	assert.True(t, gs.IsShuttingDown())

	select {
	case <-gs.ShutdownChannel():
	default:
		t.Error("shutdown channel should be closed")
	}
}

func TestGracefulServer_DrainsInFlightRequest(t *testing.T) {
	started := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(200 * time.Millisecond)
		_, _ = io.WriteString(w, "finished")
	})

	gs := NewGracefulServer("127.0.0.1:0", handler, Timeouts{Shutdown: 5 * time.Second}, nil)
	cancel, done := startServer(t, gs)

	result := make(chan string, 1)
	go func() {
		resp, err := http.Get("http://" + gs.Addr() + "/")
		if err != nil {
			result <- err.Error()
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		result <- string(body)
	}()

	<-started
	cancel()

	assert.Equal(t, "finished", <-result)
	assert.NoError(t, waitDone(t, done))
}

func TestGracefulServer_ShutdownIdempotent(t *testing.T) {
	gs := NewGracefulServer("127.0.0.1:0", okHandler(), Timeouts{}, nil)
	_, done := startServer(t, gs)
	gs.Addr()

	require.NoError(t, gs.Shutdown(time.Second))
	require.NoError(t, gs.Shutdown(time.Second))
	assert.NoError(t, waitDone(t, done))
}

func TestGracefulServer_ListenError(t *testing.T) {
	gs := NewGracefulServer("127.0.0.1:-1", okHandler(), Timeouts{}, nil)
	assert.Error(t, gs.Run(context.Background()))
}

func TestGracefulServer_SIGHUPReloads(t *testing.T) {
	gs := NewGracefulServer("127.0.0.1:0", okHandler(), Timeouts{}, nil)

	var reloads atomic.Int32
	gs.SetConfigReloadFunc(func() error {
		reloads.Add(1)
		return nil
	})

	cancel, done := startServer(t, gs)
	gs.Addr()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGHUP))
	assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, gs.IsShuttingDown())

	cancel()
	assert.NoError(t, waitDone(t, done))
}

func TestGracefulServer_ReloadConfig(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), Timeouts{}, nil)

	// No reload function configured is not an error
	assert.NoError(t, gs.ReloadConfig())

	called := false
	gs.SetConfigReloadFunc(func() error {
		called = true
		return nil
	})
	assert.NoError(t, gs.ReloadConfig())
	assert.True(t, called)
}

func TestGracefulServer_ReloadConfigWithError(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), Timeouts{}, nil)

	errReload := errors.New("bad fixtures file")
	gs.SetConfigReloadFunc(func() error { return errReload })

	assert.ErrorIs(t, gs.ReloadConfig(), errReload)
}

func TestNewGracefulServer_Timeouts(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), Timeouts{Read: time.Second}, nil)

	assert.Equal(t, time.Second, gs.server.ReadTimeout)
	assert.Equal(t, DefaultTimeouts().Write, gs.server.WriteTimeout)
	assert.Equal(t, DefaultTimeouts().Shutdown, gs.shutdownTimeout)
}
