package httpmiddleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// hit sends one request from the given remote address and returns the recorder.
func hit(h http.Handler, remoteAddr string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimit_UnderLimit(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Max: 5, Window: time.Minute})(okHandler())

	for i := range 5 {
		w := hit(handler, "192.168.1.1:12345")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Max: 2, Window: time.Minute})(okHandler())

	for range 2 {
		require.Equal(t, http.StatusOK, hit(handler, "10.0.0.1:9999").Code)
	}

	w := hit(handler, "10.0.0.1:9999")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, float64(429), body["code"])
	assert.Equal(t, "rate limit exceeded", body["message"])
}

func TestRateLimit_KeysAreIndependent(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())

	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.2:1234").Code)
	// Port changes do not change the key.
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "10.0.0.1:5678").Code)
}

func TestRateLimit_CustomKeyFunc(t *testing.T) {
	handler := RateLimit(RateLimitConfig{
		Max:    1,
		Window: time.Minute,
		KeyFunc: func(r *http.Request) string {
			return r.Header.Get("X-API-Key")
		},
	})(okHandler())

	withKey := func(key string) func(*http.Request) {
		return func(r *http.Request) { r.Header.Set("X-API-Key", key) }
	}

	assert.Equal(t, http.StatusOK, hit(handler, "1.1.1.1:1", withKey("key-a")).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "2.2.2.2:2", withKey("key-a")).Code)
	assert.Equal(t, http.StatusOK, hit(handler, "1.1.1.1:1", withKey("key-b")).Code)
}

func TestRateLimit_XForwardedFor(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())

	forwarded := func(r *http.Request) {
		r.Header.Set("X-Forwarded-For", "203.0.113.50, 70.41.3.18")
	}

	assert.Equal(t, http.StatusOK, hit(handler, "192.168.1.1:4444", forwarded).Code)
	// Same forwarded client behind a different proxy address is still limited.
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "192.168.1.2:5555", forwarded).Code)
}
