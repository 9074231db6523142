package router

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/putrafajarh/mailgate/internal/pkg/ratelimit"
)

// RateLimit gates a route through the fixed-window admission limiter, keyed
// by client IP. Denied requests get a 429 with a Retry-After hint and never
// reach the handler.
//
// Applied per route: email dispatch is limited, OAuth exchanges are not,
// mirroring the surface this service replaced.
func RateLimit(limiter *ratelimit.FixedWindow) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := r.RemoteAddr
			if host, _, err := net.SplitHostPort(identity); err == nil {
				identity = host
			}

			decision := limiter.Allow(identity)
			if !decision.Allowed {
				retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeJSON(w, errorResponse{
					Error: "Too many requests, please try again later.",
				}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
