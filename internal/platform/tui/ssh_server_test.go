package tui

import (
	"bufio"
	"context"
	"io"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSHServerServesAndShutsDown(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	cfg.ShutdownTimeout = time.Second
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)
	assert.Nil(t, srv.Addr(), "not listening yet")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	require.Eventually(t, func() bool { return srv.Addr() != nil }, 2*time.Second, 10*time.Millisecond)

	conn, err := net.DialTimeout("tcp", srv.Addr().String(), time.Second)
	require.NoError(t, err)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	banner, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(banner, "SSH-2.0"), banner)
	require.NoError(t, conn.Close())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSSHServerBindFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := DefaultSSHServerConfig()
	cfg.Address = busy.Addr().String()
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")
	cfg.BindTimeout = 200 * time.Millisecond
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)

	err = srv.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot listen")
}
