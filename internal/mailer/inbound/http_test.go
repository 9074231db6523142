package inbound_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/putrafajarh/mailgate/internal/mailer"
	"github.com/putrafajarh/mailgate/internal/pkg/clock"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/mail"
	"github.com/putrafajarh/mailgate/internal/pkg/ratelimit"
	"github.com/putrafajarh/mailgate/internal/pkg/router"
	"github.com/putrafajarh/mailgate/internal/pkg/uid"
	"github.com/putrafajarh/mailgate/internal/pkg/validator"
)

type stubConfig struct {
	values map[string]string
}

func (s *stubConfig) Close() error                   { return nil }
func (s *stubConfig) GetString(key string) string    { return s.values[key] }
func (s *stubConfig) GetInt(string) int              { return 0 }
func (s *stubConfig) GetBool(string) bool            { return false }
func (s *stubConfig) GetArray(string) []string       { return nil }
func (s *stubConfig) GetSecond(string) time.Duration { return 0 }
func (s *stubConfig) GetMinute(string) time.Duration { return 0 }

type stubMail struct {
	id  string
	err error
}

func (s *stubMail) Close() error { return nil }

func (s *stubMail) Verify(context.Context) error { return nil }

func (s *stubMail) Send(context.Context, mail.Message) (string, error) { return s.id, s.err }

func newTestServer(t *testing.T, transport mail.Mail) *router.Router {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	cfg := &stubConfig{values: map[string]string{
		"FROM_NAME":  "Mail Gate",
		"FROM_EMAIL": "noreply@example.com",
	}}

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		Instrument: instrument.NewNoop(),
	})

	if err := mailer.New(mailer.Dependency{
		Config:     cfg,
		Instrument: instrument.NewNoop(),
		Validator:  v10,
		Router:     r,
		Mail:       transport,
		Limiter:    ratelimit.NewFixedWindow(100, time.Minute, clock.New()),
	}); err != nil {
		t.Fatalf("failed to init mailer module: %v", err)
	}

	return r
}

func TestSendEmailEndToEnd(t *testing.T) {
	// Arrange
	r := newTestServer(t, &stubMail{id: "X"})

	// Act
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-email",
		strings.NewReader(`{"to":"a@b.com","subject":"Hi","text":"hi"}`))
	r.ServeHTTP(rec, req)

	// Assert
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("success = %v, want true", body["success"])
	}
	if body["messageId"] != "X" {
		t.Fatalf("messageId = %v, want X", body["messageId"])
	}
	if body["message"] != "Email sent successfully" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestSendEmailMalformedBody(t *testing.T) {
	r := newTestServer(t, &stubMail{id: "X"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(`{not json`))
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("success = %v, want false", body["success"])
	}
}

func TestSendEmailValidationEnvelope(t *testing.T) {
	r := newTestServer(t, &stubMail{id: "X"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-email",
		strings.NewReader(`{"subject":"Hi","text":"hi"}`))
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body struct {
		Success bool              `json:"success"`
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Success {
		t.Fatal("success should be false")
	}
	if _, ok := body.Details["to"]; !ok {
		t.Fatalf("details = %v, want entry for missing recipient", body.Details)
	}
}
