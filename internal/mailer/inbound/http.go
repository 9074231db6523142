package inbound

import (
	"github.com/putrafajarh/mailgate/internal/pkg/ratelimit"
	"github.com/putrafajarh/mailgate/internal/pkg/router"
)

// RegisterHTTPEndpoint wires the mailer routes. Email dispatch is the only
// rate-limited surface in the service.
func RegisterHTTPEndpoint(r *router.Router, uc uc, limiter *ratelimit.FixedWindow) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/send-email", end.SendEmail, router.RateLimit(limiter))
}
