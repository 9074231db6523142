package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/trace"

	"github.com/putrafajarh/mailgate/internal/oauth/entity"
	"github.com/putrafajarh/mailgate/internal/pkg/config"
	"github.com/putrafajarh/mailgate/internal/pkg/goerror"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/validator"
)

const (
	defaultAniListTokenURL = "https://anilist.co/api/v2/oauth/token"
	defaultMALTokenURL     = "https://myanimelist.net/v1/oauth2/token"
)

type tokenClient interface {
	PostJSON(ctx context.Context, endpoint string, payload any) (int, []byte, error)
	PostForm(ctx context.Context, endpoint string, form url.Values) (int, []byte, error)
}

type clientCredentials struct {
	id     string
	secret string
}

type Usecase struct {
	validator validator.Validator
	client    tokenClient
	ins       instrument.Instrumentation

	anilistURL  string
	anilistCred clientCredentials
	malURL      string
	malCred     clientCredentials
}

type Dependency struct {
	Config     config.Config
	Validator  validator.Validator
	Client     tokenClient
	Instrument instrument.Instrumentation
}

func NewOAuth(dep Dependency) *Usecase {
	anilistURL := dep.Config.GetString("ANILIST_TOKEN_URL")
	if anilistURL == "" {
		anilistURL = defaultAniListTokenURL
	}
	malURL := dep.Config.GetString("MAL_TOKEN_URL")
	if malURL == "" {
		malURL = defaultMALTokenURL
	}

	return &Usecase{
		validator:  dep.Validator,
		client:     dep.Client,
		ins:        dep.Instrument,
		anilistURL: anilistURL,
		anilistCred: clientCredentials{
			id:     dep.Config.GetString("ANILIST_CLIENT_ID"),
			secret: dep.Config.GetString("ANILIST_CLIENT_SECRET"),
		},
		malURL: malURL,
		malCred: clientCredentials{
			id:     dep.Config.GetString("MAL_CLIENT_ID"),
			secret: dep.Config.GetString("MAL_CLIENT_SECRET"),
		},
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("oauth.usecase").Start(ctx, name)
}

// relay converts a provider response into the caller-facing result. Provider
// error bodies are logged but never returned: they are not trusted to be safe
// to relay verbatim.
func (s *Usecase) relay(ctx context.Context, providerName string, status int, body []byte, err error) (entity.TokenPayload, error) {
	if err != nil {
		slog.ErrorContext(ctx, "token endpoint unreachable", "provider", providerName, "error", err)
		return nil, goerror.NewUnavailable(err, "Unable to reach the token endpoint. Please try again later.")
	}

	if status < 200 || status > 299 {
		slog.ErrorContext(ctx, "token exchange rejected by provider",
			"provider", providerName,
			"status", status,
			"body", string(body),
		)
		return nil, goerror.NewUpstreamStatus(status, "Token exchange failed")
	}

	var payload entity.TokenPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "token endpoint returned malformed payload", "provider", providerName, "error", err)
		return nil, goerror.NewServer(err)
	}

	return payload, nil
}
