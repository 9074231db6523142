package oauth

import (
	"time"

	"github.com/putrafajarh/mailgate/internal/oauth/inbound"
	"github.com/putrafajarh/mailgate/internal/oauth/outbound/provider"
	"github.com/putrafajarh/mailgate/internal/oauth/usecase"
	"github.com/putrafajarh/mailgate/internal/pkg/config"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/router"
	"github.com/putrafajarh/mailgate/internal/pkg/validator"
)

const defaultClientTimeout = 15 * time.Second

type Dependency struct {
	Config     config.Config
	Instrument instrument.Instrumentation
	Validator  validator.Validator
	Router     *router.Router
}

func New(dep Dependency) error {
	timeout := dep.Config.GetSecond("HTTP_CLIENT_TIMEOUT_SECONDS")
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}

	client := provider.New(timeout, dep.Instrument)

	uc := usecase.NewOAuth(usecase.Dependency{
		Config:     dep.Config,
		Validator:  dep.Validator,
		Client:     client,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
