package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/putrafajarh/mailgate/internal/pkg/config"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
)

// maxLoggedBody caps how much of a request or response body is captured for
// logging. Email payloads can be large; logs should not be.
const maxLoggedBody = 4 << 10

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	body   bytes.Buffer
	err    error
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	if remain := maxLoggedBody - r.body.Len(); remain > 0 {
		if len(b) > remain {
			r.body.Write(b[:remain])
		} else {
			r.body.Write(b)
		}
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// SetError lets handler codecs attach the original error for the access log.
func (r *statusRecorder) SetError(err error) {
	r.err = err
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// middlewareObservability traces each request, records request count and
// latency metrics, and writes a structured access log with masked bodies.
func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")
	requests, _ := meter.Int64Counter("http.server.request.count")
	latency, _ := meter.Float64Histogram("http.server.request.duration",
		metric.WithUnit("ms"))
	maskKeys := instrument.MaskKeys(cfg.GetArray("LOG_MASK_FIELDS"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoute(r)
			ctx, span := tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			reqBody := captureRequestBody(r)
			rec := &statusRecorder{ResponseWriter: w}

			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))
			elapsed := time.Since(start)

			attrs := metric.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", route),
				attribute.Int("http.response.status_code", rec.status),
			)
			requests.Add(ctx, 1, attrs)
			latency.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds(),
				"client_ip", r.RemoteAddr,
				"bytes_out", rec.bytes,
			}
			if len(reqBody) > 0 {
				fields = append(fields, "request_body", maskBody(reqBody, maskKeys))
			}
			if rec.err != nil {
				fields = append(fields, "error", rec.err.Error())
			}

			if rec.status >= http.StatusInternalServerError {
				fields = append(fields, "response_body", maskBody(rec.body.Bytes(), maskKeys))
				slog.ErrorContext(ctx, "server: request completed", fields...)
				return
			}
			slog.InfoContext(ctx, "server: request completed", fields...)
		})
	}
}

func matchedRoute(r *http.Request) string {
	if route := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); route != "" {
		return route
	}
	return r.URL.Path
}

// captureRequestBody reads up to maxLoggedBody bytes for logging and restores
// r.Body so handlers still see the full stream.
func captureRequestBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
	if err != nil {
		return nil
	}

	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}

	return head
}

// maskBody decodes a JSON body and masks secret fields before it is logged.
// Non-JSON (or truncated) payloads are logged as opaque strings.
func maskBody(body []byte, maskKeys map[string]struct{}) any {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}
	return instrument.MaskData(decoded, maskKeys)
}
