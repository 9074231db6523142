package router

import (
	"net/http"
	"strings"
)

const (
	allowedMethods  = "GET, POST, OPTIONS"
	allowedHeaders  = "Content-Type, Authorization, X-Correlation-ID, X-Request-ID"
	preflightMaxAge = "86400"
)

// OriginGuard validates a request's declared Origin against a configured
// allow-list and decides which CORS headers each response carries.
//
// This is a header-level advisory, not authentication: an unlisted origin
// still gets its request served, it just never receives credential-enabling
// headers. The set is immutable after construction.
type OriginGuard struct {
	allowed map[string]struct{}
}

// NewOriginGuard builds a guard from the configured origin list. Entries are
// trimmed of whitespace and trailing slashes; empties are dropped.
func NewOriginGuard(origins []string) *OriginGuard {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		allowed[o] = struct{}{}
	}
	return &OriginGuard{allowed: allowed}
}

// Evaluate returns the CORS headers to emit for the given Origin value and
// whether the origin is trusted.
//
//   - no Origin (non-browser caller): permitted, wildcard allow-origin
//   - listed origin: permitted, exact origin echoed with credentials allowed
//   - anything else: no allow-origin or credentials headers at all
func (g *OriginGuard) Evaluate(origin string) (http.Header, bool) {
	headers := http.Header{}

	if origin == "" {
		headers.Set("Access-Control-Allow-Origin", "*")
		return headers, true
	}

	if _, ok := g.allowed[strings.TrimRight(origin, "/")]; ok {
		headers.Set("Access-Control-Allow-Origin", origin)
		headers.Set("Access-Control-Allow-Credentials", "true")
		headers.Set("Vary", "Origin")
		return headers, true
	}

	// Unknown origins get nothing. No fallback to some configured origin's
	// headers: substituting one would weaken the allow-list for exactly the
	// case it exists to tighten.
	headers.Set("Vary", "Origin")
	return headers, false
}

// Handler wraps next with origin evaluation and preflight short-circuiting.
// OPTIONS requests are answered with 204 and never reach downstream handlers.
func (g *OriginGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers, _ := g.Evaluate(r.Header.Get("Origin"))
		for key, values := range headers {
			for _, v := range values {
				w.Header().Add(key, v)
			}
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Max-Age", preflightMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
