package httpmiddleware

import (
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig configures the sliding-window rate limiter.
type RateLimitConfig struct {
	// Max is the request budget per window.
	Max int
	// Window is the window duration.
	Window time.Duration
	// KeyFunc derives the rate limit key from a request; the client IP is
	// used when nil.
	KeyFunc func(*http.Request) string
}

// bucket tracks request counts for two adjacent windows, enough to compute
// a weighted sliding-window count.
type bucket struct {
	prevCount float64
	currCount float64
	currStart time.Time
}

type rateLimiter struct {
	cfg RateLimitConfig

	mu      sync.Mutex
	buckets map[string]*bucket
}

func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = clientIP
	}
	return &rateLimiter{cfg: cfg, buckets: make(map[string]*bucket)}
}

// allow reports whether the request identified by key fits the budget, plus
// the remaining budget and the window reset time.
func (rl *rateLimiter) allow(key string, now time.Time) (remaining int, resetAt time.Time, ok bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b := rl.buckets[key]
	if b == nil {
		b = &bucket{currStart: now}
		rl.buckets[key] = b
	}

	if age := now.Sub(b.currStart); age >= rl.cfg.Window {
		if age >= 2*rl.cfg.Window {
			b.prevCount = 0
		} else {
			b.prevCount = b.currCount
		}
		b.currCount = 0
		b.currStart = now.Truncate(rl.cfg.Window)
	}

	// Weight the previous window by how much of it the sliding window
	// still covers.
	overlap := 1.0 - now.Sub(b.currStart).Seconds()/rl.cfg.Window.Seconds()
	if overlap < 0 {
		overlap = 0
	}
	count := b.prevCount*overlap + b.currCount
	resetAt = b.currStart.Add(rl.cfg.Window)

	if count >= float64(rl.cfg.Max) {
		return 0, resetAt, false
	}

	b.currCount++
	remaining = rl.cfg.Max - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}
	return remaining, resetAt, true
}

// evictStale drops buckets idle for two full windows.
func (rl *rateLimiter) evictStale(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if now.Sub(b.currStart) >= 2*rl.cfg.Window {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit returns a middleware enforcing a per-key sliding-window limit.
// Exceeding it yields 429 with a JSON body; every response carries the
// X-RateLimit-Limit / Remaining / Reset headers.
func RateLimit(cfg RateLimitConfig) Middleware {
	return limitWith(newRateLimiter(cfg))
}

// RateLimitWithCleanup is RateLimit plus a background goroutine that evicts
// stale buckets until ctx is cancelled.
func RateLimitWithCleanup(ctx context.Context, cfg RateLimitConfig) Middleware {
	rl := newRateLimiter(cfg)
	go func() {
		ticker := time.NewTicker(2 * cfg.Window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.evictStale(now)
			}
		}
	}()
	return limitWith(rl)
}

func limitWith(rl *rateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, resetAt, ok := rl.allow(rl.cfg.KeyFunc(r), time.Now())

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				retryAfter := time.Until(resetAt)
				if retryAfter < 0 {
					retryAfter = 0
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"code":    429,
					"message": "rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address from X-Forwarded-For, X-Real-IP, or
// RemoteAddr, in that order.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
