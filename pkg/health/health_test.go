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

func passing() CheckFunc {
	return func(_ context.Context) error { return nil }
}

func failing(msg string) CheckFunc {
	return func(_ context.Context) error { return errors.New(msg) }
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var body statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestLiveEndpoint_AllPassing(t *testing.T) {
	h := New()
	h.AddLivenessCheck("check1", time.Second, passing())
	h.AddLivenessCheck("check2", time.Second, passing())

	w := httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeStatus(t, w).Status)
}

func TestLiveEndpoint_FailingCheck(t *testing.T) {
	h := New()
	h.AddLivenessCheck("backend", time.Second, failing("connection refused"))

	// A check starts healthy; drive it past the failure threshold.
	ctx := context.Background()
	for range defaultFailureThreshold {
		h.liveness[0].run(ctx)
	}

	w := httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeStatus(t, w)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "connection refused", body.Checks["backend"])
}

func TestFailureThreshold(t *testing.T) {
	h := New()
	h.AddLivenessCheck("flaky", time.Second, failing("boom"))

	ctx := context.Background()
	p := h.liveness[0]

	// Below the threshold the probe still reports healthy.
	for range defaultFailureThreshold - 1 {
		p.run(ctx)
	}
	_, failed := p.failure()
	assert.False(t, failed)

	p.run(ctx)
	_, failed = p.failure()
	assert.True(t, failed)
}

func TestRecovery(t *testing.T) {
	var healthy bool
	h := New()
	h.AddReadinessCheck("toggle", time.Second, func(_ context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	})
	h.SetReady(true)

	ctx := context.Background()
	p := h.readiness[0]
	for range defaultFailureThreshold {
		p.run(ctx)
	}
	assert.False(t, h.IsReady())

	healthy = true
	p.run(ctx)
	assert.True(t, h.IsReady())
}

func TestReadyEndpoint_ManualGate(t *testing.T) {
	h := New()
	h.AddReadinessCheck("up", time.Second, passing())

	w := httptest.NewRecorder()
	h.ReadyEndpoint(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "service is not ready", decodeStatus(t, w).Checks["_readiness"])

	h.SetReady(true)
	w = httptest.NewRecorder()
	h.ReadyEndpoint(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStartStop(t *testing.T) {
	calls := make(chan struct{}, 16)
	h := New()
	h.AddLivenessCheck("tick", time.Second, func(_ context.Context) error {
		select {
		case calls <- struct{}{}:
		default:
		}
		return nil
	})

	h.Start(context.Background(), 10*time.Millisecond)
	defer h.Stop()

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("check never ran")
	}
}

func TestGoroutineCountCheck(t *testing.T) {
	require.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}

func TestPingCheck(t *testing.T) {
	ok := PingCheck(func(_ context.Context) error { return nil })
	require.NoError(t, ok(context.Background()))

	bad := PingCheck(func(_ context.Context) error { return errors.New("unreachable") })
	assert.ErrorContains(t, bad(context.Background()), "unreachable")
}
