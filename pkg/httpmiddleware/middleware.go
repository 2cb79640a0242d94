// Package httpmiddleware provides the HTTP middleware stack for the
// gateway: panic recovery, request IDs, CORS, request logging, and a
// sliding-window rate limiter.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Wrap applies the middlewares to h so the first middleware listed becomes
// the outermost layer.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
