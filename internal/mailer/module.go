package mailer

import (
	"github.com/putrafajarh/mailgate/internal/mailer/inbound"
	"github.com/putrafajarh/mailgate/internal/mailer/usecase"
	"github.com/putrafajarh/mailgate/internal/pkg/config"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/mail"
	"github.com/putrafajarh/mailgate/internal/pkg/ratelimit"
	"github.com/putrafajarh/mailgate/internal/pkg/router"
	"github.com/putrafajarh/mailgate/internal/pkg/validator"
)

type Dependency struct {
	Config     config.Config
	Instrument instrument.Instrumentation
	Validator  validator.Validator
	Router     *router.Router
	Mail       mail.Mail
	Limiter    *ratelimit.FixedWindow
}

func New(dep Dependency) error {
	uc := usecase.NewMailer(usecase.Dependency{
		Config:     dep.Config,
		Validator:  dep.Validator,
		Mailer:     dep.Mail,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Limiter)

	return nil
}
