package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/putrafajarh/mailgate/internal/pkg/goerror"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/validator"
)

type fakeConfig struct {
	values map[string]string
}

func (f *fakeConfig) Close() error                   { return nil }
func (f *fakeConfig) GetString(key string) string    { return f.values[key] }
func (f *fakeConfig) GetInt(string) int              { return 0 }
func (f *fakeConfig) GetBool(string) bool            { return false }
func (f *fakeConfig) GetArray(string) []string       { return nil }
func (f *fakeConfig) GetSecond(string) time.Duration { return 0 }
func (f *fakeConfig) GetMinute(string) time.Duration { return 0 }

type fakeTokenClient struct {
	calls    int
	endpoint string
	payload  any
	form     url.Values

	status int
	body   []byte
	err    error
}

func (f *fakeTokenClient) PostJSON(_ context.Context, endpoint string, payload any) (int, []byte, error) {
	f.calls++
	f.endpoint = endpoint
	f.payload = payload
	return f.status, f.body, f.err
}

func (f *fakeTokenClient) PostForm(_ context.Context, endpoint string, form url.Values) (int, []byte, error) {
	f.calls++
	f.endpoint = endpoint
	f.form = form
	return f.status, f.body, f.err
}

func newTestUsecase(t *testing.T, client tokenClient) *Usecase {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	return NewOAuth(Dependency{
		Config: &fakeConfig{values: map[string]string{
			"ANILIST_CLIENT_ID":     "anilist-id",
			"ANILIST_CLIENT_SECRET": "anilist-secret",
			"MAL_CLIENT_ID":         "mal-id",
			"MAL_CLIENT_SECRET":     "mal-secret",
		}},
		Validator:  v10,
		Client:     client,
		Instrument: instrument.NewNoop(),
	})
}

func TestAniListExchangeValidationSkipsNetwork(t *testing.T) {
	tests := []struct {
		name string
		in   AniListExchangeInput
	}{
		{name: "missing code", in: AniListExchangeInput{RedirectURI: "https://app.example.com/cb"}},
		{name: "missing redirect uri", in: AniListExchangeInput{Code: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeTokenClient{}
			uc := newTestUsecase(t, client)

			_, err := uc.AniListExchange(context.Background(), tt.in)

			var gerr *goerror.Error
			if !errors.As(err, &gerr) || gerr.StatusCode() != 400 {
				t.Fatalf("expected 400 validation error, got %v", err)
			}
			if client.calls != 0 {
				t.Fatalf("token endpoint invoked %d times, want 0", client.calls)
			}
		})
	}
}

func TestMALExchangeMissingVerifierSkipsNetwork(t *testing.T) {
	client := &fakeTokenClient{}
	uc := newTestUsecase(t, client)

	_, err := uc.MALExchange(context.Background(), MALExchangeInput{
		Code:        "abc",
		RedirectURI: "https://app.example.com/cb",
	})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.StatusCode() != 400 {
		t.Fatalf("expected 400 validation error, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("token endpoint invoked %d times, want 0", client.calls)
	}
}

func TestAniListExchangeAttachesServerCredentials(t *testing.T) {
	client := &fakeTokenClient{status: 200, body: []byte(`{"access_token":"tok","token_type":"Bearer"}`)}
	uc := newTestUsecase(t, client)

	payload, err := uc.AniListExchange(context.Background(), AniListExchangeInput{
		Code:        "auth-code",
		RedirectURI: "https://app.example.com/cb",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.calls != 1 {
		t.Fatalf("token endpoint invoked %d times, want 1", client.calls)
	}
	if client.endpoint != defaultAniListTokenURL {
		t.Fatalf("endpoint = %q, want %q", client.endpoint, defaultAniListTokenURL)
	}

	sent, ok := client.payload.(map[string]string)
	if !ok {
		t.Fatalf("payload type = %T, want map[string]string", client.payload)
	}
	if sent["client_id"] != "anilist-id" || sent["client_secret"] != "anilist-secret" {
		t.Fatalf("server credentials not attached: %v", sent)
	}
	if sent["grant_type"] != "authorization_code" || sent["code"] != "auth-code" {
		t.Fatalf("exchange fields wrong: %v", sent)
	}

	if payload["access_token"] != "tok" {
		t.Fatalf("payload = %v, want provider token fields relayed", payload)
	}
}

func TestMALExchangeSendsPKCEForm(t *testing.T) {
	client := &fakeTokenClient{status: 200, body: []byte(`{"access_token":"tok"}`)}
	uc := newTestUsecase(t, client)

	_, err := uc.MALExchange(context.Background(), MALExchangeInput{
		Code:         "auth-code",
		CodeVerifier: "verifier-123",
		RedirectURI:  "https://app.example.com/cb",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.endpoint != defaultMALTokenURL {
		t.Fatalf("endpoint = %q, want %q", client.endpoint, defaultMALTokenURL)
	}
	want := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {"mal-id"},
		"client_secret": {"mal-secret"},
		"code":          {"auth-code"},
		"code_verifier": {"verifier-123"},
		"redirect_uri":  {"https://app.example.com/cb"},
	}
	for key, values := range want {
		if client.form.Get(key) != values[0] {
			t.Fatalf("form[%s] = %q, want %q", key, client.form.Get(key), values[0])
		}
	}
}

func TestExchangePropagatesProviderStatus(t *testing.T) {
	client := &fakeTokenClient{status: 400, body: []byte(`{"error":"invalid_grant","hint":"code sekrit-code expired"}`)}
	uc := newTestUsecase(t, client)

	_, err := uc.AniListExchange(context.Background(), AniListExchangeInput{
		Code:        "sekrit-code",
		RedirectURI: "https://app.example.com/cb",
	})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror, got %v", err)
	}
	if gerr.StatusCode() != 400 {
		t.Fatalf("status = %d, want provider status 400", gerr.StatusCode())
	}
	if gerr.Msg() != "Token exchange failed" {
		t.Fatalf("msg = %q, want generic exchange failure", gerr.Msg())
	}
	// The provider's raw body and the caller's code must never surface.
	if strings.Contains(gerr.Msg(), "sekrit-code") || gerr.Unwrap() != nil {
		t.Fatalf("provider error detail leaked: %v", err)
	}
}

func TestExchangeUnreachableEndpoint(t *testing.T) {
	client := &fakeTokenClient{err: errors.New("dial tcp: connection refused")}
	uc := newTestUsecase(t, client)

	_, err := uc.MALExchange(context.Background(), MALExchangeInput{
		Code:         "abc",
		CodeVerifier: "verifier",
		RedirectURI:  "https://app.example.com/cb",
	})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.StatusCode() != 503 {
		t.Fatalf("expected 503, got %v", err)
	}
}

func TestExchangeMalformedProviderPayload(t *testing.T) {
	client := &fakeTokenClient{status: 200, body: []byte("<html>not json</html>")}
	uc := newTestUsecase(t, client)

	_, err := uc.AniListExchange(context.Background(), AniListExchangeInput{
		Code:        "abc",
		RedirectURI: "https://app.example.com/cb",
	})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.StatusCode() != 500 {
		t.Fatalf("expected 500, got %v", err)
	}
}
