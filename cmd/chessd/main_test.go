package main

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/lokesh185/rusty-chess/internal/config"
	"github.com/lokesh185/rusty-chess/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, port int) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = port
	cfg.Storage.Path = filepath.Join(t.TempDir(), "db")
	return cfg
}

func TestRunReturnsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig(t, busy.Addr().(*net.TCPAddr).Port)

	done := make(chan error, 1)
	go func() { done <- run(context.Background(), cfg) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after the listener failed")
	}

	// The database lock is only released by Close.
	st, err := store.Open(cfg.Storage.Path)
	require.NoError(t, err, "store left open after a failed start")
	require.NoError(t, st.Close())
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	st, err := store.Open(cfg.Storage.Path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}
