package inbound

import (
	"context"

	"github.com/putrafajarh/mailgate/internal/mailer/entity"
	"github.com/putrafajarh/mailgate/internal/mailer/usecase"
)

type uc interface {
	SendEmail(ctx context.Context, in usecase.SendEmailInput) (*entity.Receipt, error)
}
