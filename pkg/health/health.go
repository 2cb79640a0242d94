// Package health provides Kubernetes-style liveness and readiness probes.
//
// Registered checks run periodically in background goroutines. Thresholds
// keep the probes from flapping: a check must fail failureThreshold times
// in a row before it reports unhealthy, and pass successThreshold times
// before it recovers.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc probes one component. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

const (
	defaultFailureThreshold = 3
	defaultSuccessThreshold = 1
)

// probe holds one check plus its runtime state.
//
// run() executes on a single goroutine, so the consecutive counters need no
// locking. healthy and lastErr are read by HTTP handlers from arbitrary
// goroutines and use atomics.
type probe struct {
	name    string
	timeout time.Duration
	check   CheckFunc

	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	fails int
	oks   int
}

func newProbe(name string, timeout time.Duration, check CheckFunc) *probe {
	p := &probe{name: name, timeout: timeout, check: check}
	p.healthy.Store(true) // healthy until proven otherwise
	return p
}

func (p *probe) run(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.check(checkCtx)
	p.lastErr.Store(&err)

	if err != nil {
		p.oks = 0
		p.fails++
		if p.fails >= defaultFailureThreshold {
			p.healthy.Store(false)
		}
		return
	}
	p.fails = 0
	p.oks++
	if p.oks >= defaultSuccessThreshold {
		p.healthy.Store(true)
	}
}

func (p *probe) failure() (string, bool) {
	if p.healthy.Load() {
		return "", false
	}
	if errp := p.lastErr.Load(); errp != nil && *errp != nil {
		return (*errp).Error(), true
	}
	return "check is unhealthy", true
}

// Health manages liveness and readiness checks for a service.
type Health struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []*probe
	readiness []*probe
	cancel    context.CancelFunc
}

// New creates a Health instance. The service starts not-ready; call
// SetReady(true) once initialization completes.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a check for /livez (process is alive:
// goroutine leaks, deadlocks).
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, newProbe(name, timeout, check))
}

// AddReadinessCheck registers a check for /readyz (service can take
// traffic: upstream reachability, warmup).
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, newProbe(name, timeout, check))
}

// Start launches one goroutine per registered check, each running at the
// given interval until Stop is called or ctx is cancelled.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	probes := make([]*probe, 0, len(h.liveness)+len(h.readiness))
	probes = append(probes, h.liveness...)
	probes = append(probes, h.readiness...)
	h.mu.Unlock()

	for _, p := range probes {
		go func(p *probe) {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			p.run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					p.run(ctx)
				}
			}
		}(p)
	}
}

// Stop cancels the background check goroutines. Safe to call repeatedly.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// SetReady flips the manual readiness gate: true after initialization,
// false during graceful shutdown to drain traffic.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the manual gate is open and every readiness
// check passes.
func (h *Health) IsReady() bool {
	if !h.ready.Load() {
		return false
	}
	h.mu.RLock()
	probes := h.readiness
	h.mu.RUnlock()

	for _, p := range probes {
		if _, failed := p.failure(); failed {
			return false
		}
	}
	return true
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint serves /livez: 200 when all liveness checks pass, 503 with
// per-check failure details otherwise.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	probes := append([]*probe(nil), h.liveness...)
	h.mu.RUnlock()

	writeStatus(w, collectFailures(probes))
}

// ReadyEndpoint serves /readyz: 200 when the service is marked ready and
// all readiness checks pass, 503 with details otherwise.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	probes := append([]*probe(nil), h.readiness...)
	h.mu.RUnlock()

	failures := collectFailures(probes)
	if !h.ready.Load() {
		failures["_readiness"] = "service is not ready"
	}
	writeStatus(w, failures)
}

func collectFailures(probes []*probe) map[string]string {
	failures := make(map[string]string)
	for _, p := range probes {
		if msg, failed := p.failure(); failed {
			failures[p.name] = msg
		}
	}
	return failures
}

func writeStatus(w http.ResponseWriter, failures map[string]string) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{Status: "ok"}
	code := http.StatusOK
	if len(failures) > 0 {
		resp = statusResponse{Status: "unhealthy", Checks: failures}
		code = http.StatusServiceUnavailable
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
