package inbound

import (
	"github.com/putrafajarh/mailgate/internal/oauth/usecase"
	"github.com/putrafajarh/mailgate/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// AniListToken exchanges an AniList authorization code for tokens. The
// provider's token fields are merged into the success envelope unchanged.
func (h *HTTPEndpoint) AniListToken(r *router.Request) (any, error) {
	var req AniListTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return h.uc.AniListExchange(r.Context(), usecase.AniListExchangeInput{
		Code:        req.Code,
		RedirectURI: req.RedirectURI,
	})
}

// MALToken exchanges a MyAnimeList authorization code for tokens using PKCE.
func (h *HTTPEndpoint) MALToken(r *router.Request) (any, error) {
	var req MALTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return h.uc.MALExchange(r.Context(), usecase.MALExchangeInput{
		Code:         req.Code,
		CodeVerifier: req.CodeVerifier,
		RedirectURI:  req.RedirectURI,
	})
}
