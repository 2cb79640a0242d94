package httpmiddleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins allowed to make cross-origin requests.
	// Empty, or the single entry "*", allows every origin.
	AllowOrigins []string

	// AllowHeaders lists request headers clients may send. When empty, the
	// preflight's Access-Control-Request-Headers value is echoed back.
	AllowHeaders []string

	// AllowCredentials exposes responses to credentialed requests. The
	// wildcard origin is not permitted with credentials; the middleware
	// falls back to echoing the specific origin.
	AllowCredentials bool

	// MaxAge is how long (seconds) preflight results may be cached.
	MaxAge int
}

// CORS returns a middleware handling cross-origin resource sharing,
// including preflight requests. Origin matching is case-insensitive; Vary
// headers are set so shared caches cannot serve a response across origins.
func CORS(cfg CORSConfig) Middleware {
	allowAll := len(cfg.AllowOrigins) == 0
	allowed := make(map[string]string, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		allowed[strings.ToLower(o)] = o
	}
	// Credentials forbid the wildcard; echo the request origin instead.
	echoOrigin := allowAll && cfg.AllowCredentials
	if cfg.AllowCredentials {
		allowAll = false
	}

	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				if !allowAll {
					w.Header().Add("Vary", "Origin")
				}
				next.ServeHTTP(w, r)
				return
			}

			allowOrigin := ""
			switch {
			case allowAll:
				allowOrigin = "*"
			case echoOrigin:
				allowOrigin = origin
			default:
				allowOrigin = allowed[strings.ToLower(origin)]
			}

			// Preflight.
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Add("Vary", "Origin")
				w.Header().Add("Vary", "Access-Control-Request-Method")
				w.Header().Add("Vary", "Access-Control-Request-Headers")

				if allowOrigin != "" {
					w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					if allowHeaders != "" {
						w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
					} else if rh := r.Header.Get("Access-Control-Request-Headers"); rh != "" {
						w.Header().Set("Access-Control-Allow-Headers", rh)
					}
					if cfg.AllowCredentials {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
					if cfg.MaxAge > 0 {
						w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
					}
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			// Actual request.
			if !allowAll {
				w.Header().Add("Vary", "Origin")
			}
			if allowOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
