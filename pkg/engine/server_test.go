package engine

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getcalcd/calcd/pkg/config"
)

// testConfig returns a config bound to a kernel-assigned port on loopback.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	return cfg
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		srv := NewServer(nil)
		require.NotNil(t, srv)
		assert.NotNil(t, srv.cfg)
		assert.NotNil(t, srv.Handler())
		assert.False(t, srv.IsRunning())
	})

	t.Run("custom config", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Host: "127.0.0.1", Port: 0, ReadTimeout: 10, WriteTimeout: 10}
		srv := NewServer(cfg)
		require.NotNil(t, srv)
		assert.Equal(t, 10, srv.cfg.ReadTimeout)
	})

	t.Run("nil logger option falls back to nop", func(t *testing.T) {
		t.Parallel()
		srv := NewServer(nil, WithLogger(nil))
		require.NotNil(t, srv.log)
	})
}

func TestServerLifecycle(t *testing.T) {
	t.Parallel()

	srv := NewServer(testConfig())

	assert.False(t, srv.IsRunning())
	assert.Equal(t, 0, srv.Uptime())

	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })

	assert.True(t, srv.IsRunning())
	assert.NotZero(t, srv.Port())

	// Double start is an error.
	require.Error(t, srv.Start())

	require.NoError(t, srv.Stop())
	assert.False(t, srv.IsRunning())

	// Stopping a stopped server is a no-op.
	require.NoError(t, srv.Stop())
}

func TestServerServesRequests(t *testing.T) {
	t.Parallel()

	srv := NewServer(testConfig())
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(srv.URL() + "/add/2/2")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body resultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(4), body.Result)
}

func TestServerPortConflict(t *testing.T) {
	t.Parallel()

	first := NewServer(testConfig())
	require.NoError(t, first.Start())
	t.Cleanup(func() { _ = first.Stop() })

	cfg := testConfig()
	cfg.Port = first.Port()
	second := NewServer(cfg)
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
