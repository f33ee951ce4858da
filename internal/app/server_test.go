//go:build !integration

package app

import (
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewServer(t *testing.T) {
	server := NewServer(okHandler, "8080")

	require.NotNil(t, server.httpServer)
	assert.Equal(t, ":8080", server.httpServer.Addr)
	assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
	assert.Equal(t, 5*time.Second, server.httpServer.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, server.httpServer.WriteTimeout)
	assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
	assert.Equal(t, 10*time.Second, server.shutdownTimeout)
}

func TestServer_ShutdownRunsHooksInReverse(t *testing.T) {
	server := NewServer(okHandler, "0")

	var order []int
	server.OnShutdown(func() { order = append(order, 1) })
	server.OnShutdown(func() { order = append(order, 2) })

	require.NoError(t, server.Shutdown())
	require.NoError(t, server.Shutdown())

	assert.Equal(t, []int{2, 1}, order)
}

func TestServer_Run_ListenError(t *testing.T) {
	server := NewServer(okHandler, "invalid-port")

	hooked := make(chan struct{}, 1)
	server.OnShutdown(func() { hooked <- struct{}{} })

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	select {
	case err := <-errChan:
		assert.Error(t, err)
		assert.Len(t, hooked, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return on listen error")
	}
}

func TestServer_Run_GracefulShutdown(t *testing.T) {
	server := NewServer(okHandler, "0")

	hooked := make(chan struct{}, 1)
	server.OnShutdown(func() { hooked <- struct{}{} })

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	time.Sleep(100 * time.Millisecond)

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
		assert.Len(t, hooked, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("Server did not shutdown gracefully")
	}
}
