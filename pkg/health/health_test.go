package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, endpoint http.HandlerFunc) (int, statusResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestLiveEndpoint(t *testing.T) {
	s := New()
	s.AddLivenessCheck("always-ok", time.Second, func(context.Context) error { return nil })

	code, resp := probe(t, s.LiveEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Checks)
}

func TestLiveEndpointFailure(t *testing.T) {
	s := New()
	s.AddLivenessCheck("always-ok", time.Second, func(context.Context) error { return nil })
	s.AddLivenessCheck("broken", time.Second, func(context.Context) error {
		return errors.New("too many goroutines")
	})

	code, resp := probe(t, s.LiveEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "too many goroutines", resp.Checks["broken"])
	assert.NotContains(t, resp.Checks, "always-ok")
}

func TestReadyEndpointGate(t *testing.T) {
	s := New()

	code, resp := probe(t, s.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, resp.Checks, "_readiness")

	s.SetReady(true)
	code, _ = probe(t, s.ReadyEndpoint)
	assert.Equal(t, http.StatusOK, code)

	// Draining closes the gate again.
	s.SetReady(false)
	code, _ = probe(t, s.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestReadyEndpointCheckFailure(t *testing.T) {
	s := New()
	s.SetReady(true)
	s.AddReadinessCheck("postgres", time.Second, func(context.Context) error {
		return errors.New("connection refused")
	})

	code, resp := probe(t, s.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "connection refused", resp.Checks["postgres"])
}

func TestCheckTimeout(t *testing.T) {
	s := New()
	s.SetReady(true)
	s.AddReadinessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})

	code, resp := probe(t, s.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, resp.Checks["slow"], "deadline exceeded")
}

func TestGoroutineCountCheck(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, GoroutineCountCheck(1_000_000)(ctx))
	assert.Error(t, GoroutineCountCheck(1)(ctx))
}
