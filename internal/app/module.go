package app

import (
	"log/slog"
	"os"

	"github.com/putrafajarh/mailgate/internal/mailer"
	"github.com/putrafajarh/mailgate/internal/oauth"
)

func (a *App) initModules() {
	if err := mailer.New(mailer.Dependency{
		Config:     a.config,
		Instrument: a.ins,
		Validator:  a.validator,
		Router:     a.router,
		Mail:       a.mail,
		Limiter:    a.limiter,
	}); err != nil {
		slog.Error("failed to init module mailer", "error", err)
		os.Exit(1)
	}

	if err := oauth.New(oauth.Dependency{
		Config:     a.config,
		Instrument: a.ins,
		Validator:  a.validator,
		Router:     a.router,
	}); err != nil {
		slog.Error("failed to init module oauth", "error", err)
		os.Exit(1)
	}
}
