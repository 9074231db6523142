package router

import (
	"net/http"
	"strings"

	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/uid"
)

const headerCorrelationID = "X-Correlation-ID"

// middlewareCorrelationID ensures every request carries a correlation ID,
// taking the caller's X-Correlation-ID or X-Request-ID when present and
// generating one otherwise. The ID is echoed on the response and stored in
// the request context for logging.
func middlewareCorrelationID(id uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := strings.TrimSpace(r.Header.Get(headerCorrelationID))
			if cid == "" {
				cid = strings.TrimSpace(r.Header.Get("X-Request-ID"))
			}
			if cid == "" {
				cid = id.Generate()
			}

			w.Header().Set(headerCorrelationID, cid)
			ctx := instrument.SetCorrelationID(r.Context(), cid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
