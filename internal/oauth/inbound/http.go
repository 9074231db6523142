package inbound

import (
	"github.com/putrafajarh/mailgate/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/oauth/anilist/token", end.AniListToken)
	r.POST("/api/oauth/mal/token", end.MALToken)
}
