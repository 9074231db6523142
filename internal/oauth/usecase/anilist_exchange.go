package usecase

import (
	"context"

	"github.com/putrafajarh/mailgate/internal/oauth/entity"
	"github.com/putrafajarh/mailgate/internal/pkg/goerror"
)

type AniListExchangeInput struct {
	Code        string `validate:"required"`
	RedirectURI string `validate:"required"`
}

// AniListExchange trades an authorization code for tokens at AniList's token
// endpoint. AniList expects a JSON body.
func (s *Usecase) AniListExchange(ctx context.Context, in AniListExchangeInput) (entity.TokenPayload, error) {
	ctx, span := s.startSpan(ctx, "AniListExchange")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	status, body, err := s.client.PostJSON(ctx, s.anilistURL, map[string]string{
		"grant_type":    "authorization_code",
		"client_id":     s.anilistCred.id,
		"client_secret": s.anilistCred.secret,
		"redirect_uri":  in.RedirectURI,
		"code":          in.Code,
	})

	return s.relay(ctx, "anilist", status, body, err)
}
