package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/putrafajarh/mailgate/internal/pkg/clock"
	"github.com/putrafajarh/mailgate/internal/pkg/ratelimit"
)

func TestRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "no headers uses peer address",
			remoteAddr: "192.0.2.10:4321",
			want:       "192.0.2.10",
		},
		{
			name:       "trusted proxy honors true-client-ip",
			trustProxy: true,
			headers:    map[string]string{"True-Client-IP": "203.0.113.7"},
			remoteAddr: "10.0.0.1:4321",
			want:       "203.0.113.7",
		},
		{
			name:       "trusted proxy honors x-real-ip",
			trustProxy: true,
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			remoteAddr: "10.0.0.1:4321",
			want:       "203.0.113.8",
		},
		{
			name:       "trusted proxy takes first forwarded hop",
			trustProxy: true,
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			remoteAddr: "10.0.0.1:4321",
			want:       "203.0.113.9",
		},
		{
			name:       "untrusted ignores forwarding headers",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9", "X-Real-IP": "203.0.113.8"},
			remoteAddr: "192.0.2.10:4321",
			want:       "192.0.2.10",
		},
		{
			name:       "trusted falls back on garbage header",
			trustProxy: true,
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			remoteAddr: "192.0.2.10:4321",
			want:       "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := realIP(req, tt.trustProxy); got != tt.want {
				t.Fatalf("realIP = %q, want %q", got, tt.want)
			}
		})
	}
}

// Direct callers must not be able to reset their admission window by rotating
// forwarding headers.
func TestRateLimitIgnoresSpoofedForwardingHeaders(t *testing.T) {
	limiter := ratelimit.NewFixedWindow(1, time.Minute, clock.New())

	r := newTestRouter(false)
	r.POST("/api/send-email", func(req *Request) (any, error) {
		return map[string]string{"messageId": "X"}, nil
	}, RateLimit(limiter))

	send := func(forwardedFor string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(`{}`))
		req.RemoteAddr = "192.0.2.50:1234"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("203.0.113.1"); code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", code)
	}
	if code := send("203.0.113.2"); code != http.StatusTooManyRequests {
		t.Fatalf("second request with rotated header status = %d, want 429", code)
	}
}
