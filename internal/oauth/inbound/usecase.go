package inbound

import (
	"context"

	"github.com/putrafajarh/mailgate/internal/oauth/entity"
	"github.com/putrafajarh/mailgate/internal/oauth/usecase"
)

type uc interface {
	AniListExchange(ctx context.Context, in usecase.AniListExchangeInput) (entity.TokenPayload, error)
	MALExchange(ctx context.Context, in usecase.MALExchangeInput) (entity.TokenPayload, error)
}
