package usecase

import (
	"context"
	"net/url"

	"github.com/putrafajarh/mailgate/internal/oauth/entity"
	"github.com/putrafajarh/mailgate/internal/pkg/goerror"
)

type MALExchangeInput struct {
	Code         string `validate:"required"`
	CodeVerifier string `validate:"required"`
	RedirectURI  string `validate:"required"`
}

// MALExchange trades an authorization code for tokens at MyAnimeList's token
// endpoint. MAL uses PKCE, so the caller's code verifier travels with the
// server-held client secret in a form-encoded body.
func (s *Usecase) MALExchange(ctx context.Context, in MALExchangeInput) (entity.TokenPayload, error) {
	ctx, span := s.startSpan(ctx, "MALExchange")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", s.malCred.id)
	form.Set("client_secret", s.malCred.secret)
	form.Set("code", in.Code)
	form.Set("code_verifier", in.CodeVerifier)
	form.Set("redirect_uri", in.RedirectURI)

	status, body, err := s.client.PostForm(ctx, s.malURL, form)

	return s.relay(ctx, "myanimelist", status, body, err)
}
