package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getcalcd/calcd/pkg/engine"
)

// newTestServer runs the real engine handler behind an httptest server.
func newTestServer(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(engine.NewHandler())
	t.Cleanup(srv.Close)
	return New(srv.URL, WithTimeout(5*time.Second))
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	c := newTestServer(t)
	ctx := context.Background()

	got, err := c.Add(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)

	got, err = c.Subtract(ctx, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	got, err = c.Subtract(ctx, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), got)

	got, err = c.Multiply(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)
}

func TestGreeting(t *testing.T) {
	t.Parallel()
	c := newTestServer(t)

	greeting, err := c.Greeting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Hello": "World"}, greeting)
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	c := newTestServer(t)

	require.NoError(t, c.Healthz(context.Background()))
}

func TestClientErrorMapping(t *testing.T) {
	t.Parallel()
	c := newTestServer(t)

	status, err := c.GetJSON(context.Background(), "/add/foo/2", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, status)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, "invalid integer")
}

func TestUnreachableService(t *testing.T) {
	t.Parallel()

	// Nothing listens here; connection errors must not surface as APIError.
	c := New("http://127.0.0.1:1", WithTimeout(500*time.Millisecond))
	_, err := c.Add(context.Background(), 1, 2)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestWaitForReady(t *testing.T) {
	t.Parallel()

	t.Run("ready service", func(t *testing.T) {
		t.Parallel()
		c := newTestServer(t)
		require.NoError(t, c.WaitForReady(context.Background(), 2*time.Second))
	})

	t.Run("times out when unreachable", func(t *testing.T) {
		t.Parallel()
		c := New("http://127.0.0.1:1", WithTimeout(100*time.Millisecond))
		err := c.WaitForReady(context.Background(), 300*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout waiting")
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := New("http://127.0.0.1:1", WithTimeout(100*time.Millisecond))
		err := c.WaitForReady(ctx, 5*time.Second)
		require.ErrorIs(t, err, context.Canceled)
	})
}
