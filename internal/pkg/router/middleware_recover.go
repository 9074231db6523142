package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/putrafajarh/mailgate/internal/pkg/stacktrace"
)

// middlewareRecoverer converts handler panics into a JSON 500 so a single bad
// request cannot take the process down. http.ErrAbortHandler is re-raised, as
// the server uses it to abort writes deliberately.
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "server: panic recovered",
				"panic", rec,
				"stack", stacktrace.InternalPaths(debug.Stack()),
				"path", r.URL.Path,
			)
			writeJSON(w, errorResponse{Error: "Internal server error"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
