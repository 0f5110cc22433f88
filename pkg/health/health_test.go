package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestReadyEndpointBeforeSetReady(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeStatus(t, rec)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Contains(t, resp.Checks, "_readiness")
}

func TestReadyEndpointAfterSetReady(t *testing.T) {
	h := New()
	h.SetReady(true)

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeStatus(t, rec).Status)
	assert.True(t, h.IsReady())
}

func TestLiveEndpointHealthyByDefault(t *testing.T) {
	h := New()
	h.AddLivenessCheck("noop", time.Second, func(context.Context) error { return nil })

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckFailureThreshold(t *testing.T) {
	c := newCheck("failing", time.Second, func(context.Context) error {
		return errors.New("down")
	})

	ctx := context.Background()
	// Below the threshold the check stays healthy to avoid flapping.
	for range defaultFailureThreshold - 1 {
		c.run(ctx)
		_, failed := c.failure()
		assert.False(t, failed)
	}
	c.run(ctx)
	msg, failed := c.failure()
	assert.True(t, failed)
	assert.Equal(t, "down", msg)
}

func TestCheckRecovers(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	c := newCheck("flaky", time.Second, func(context.Context) error {
		if fail.Load() {
			return errors.New("down")
		}
		return nil
	})

	ctx := context.Background()
	for range defaultFailureThreshold {
		c.run(ctx)
	}
	_, failed := c.failure()
	require.True(t, failed)

	fail.Store(false)
	c.run(ctx)
	_, failed = c.failure()
	assert.False(t, failed)
}

func TestUnhealthyReadinessCheckBlocksReady(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("dep", time.Second, func(context.Context) error {
		return errors.New("unreachable")
	})

	// Force the check unhealthy directly: run it past the threshold.
	h.mu.RLock()
	c := h.readiness[0]
	h.mu.RUnlock()
	for range defaultFailureThreshold {
		c.run(context.Background())
	}

	assert.False(t, h.IsReady())

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decodeStatus(t, rec).Checks, "dep")
}

func TestStartAndStop(t *testing.T) {
	h := New()
	var calls atomic.Int32
	h.AddLivenessCheck("counter", time.Second, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	h.Start(context.Background(), 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	h.Stop()
	h.Stop() // repeated Stop is safe
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
