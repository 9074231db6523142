package router

import (
	"net"
	"net/http"
	"strings"
)

// middlewareIP normalizes r.RemoteAddr to the real client IP so downstream
// consumers (the admission limiter, logs) key on the same identity whether or
// not the service sits behind a proxy.
//
// Forwarding headers are attacker-controlled when clients connect directly, so
// they are only consulted when trustProxy is set. Otherwise the transport-level
// peer address is authoritative.
func middlewareIP(trustProxy bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rip := realIP(r, trustProxy); rip != "" {
				r.RemoteAddr = rip
			}
			next.ServeHTTP(w, r)
		})
	}
}

func realIP(r *http.Request, trustProxy bool) string {
	var ip string

	if trustProxy {
		if tcip := r.Header.Get("True-Client-IP"); tcip != "" {
			ip = tcip
		} else if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
			ip = xrip
		} else if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ip, _, _ = strings.Cut(xff, ",")
		}
		ip = strings.TrimSpace(ip)
	}

	if ip == "" || net.ParseIP(ip) == nil {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil && net.ParseIP(host) != nil {
			return host
		}
		return ""
	}
	return ip
}
