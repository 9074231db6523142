// Package provider performs the outbound HTTP calls to identity providers'
// token endpoints.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
)

// maxResponseBody caps how much of a provider response is read. Token
// payloads are small; anything larger is suspect.
const maxResponseBody = 1 << 20

type Client struct {
	http *http.Client
	ins  instrument.Instrumentation
}

func New(timeout time.Duration, ins instrument.Instrumentation) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		ins:  ins,
	}
}

// PostJSON sends a JSON payload and returns the response status and body.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	return c.do(ctx, endpoint, "application/json", bytes.NewReader(body))
}

// PostForm sends form-encoded values and returns the response status and body.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values) (int, []byte, error) {
	return c.do(ctx, endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (c *Client) do(ctx context.Context, endpoint, contentType string, body io.Reader) (int, []byte, error) {
	ctx, span := c.ins.Tracer("oauth.provider").Start(ctx, "POST "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, data, nil
}
