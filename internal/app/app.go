package app

import (
	"context"
	"net/http"

	"github.com/putrafajarh/mailgate/internal/pkg/clock"
	"github.com/putrafajarh/mailgate/internal/pkg/config"
	"github.com/putrafajarh/mailgate/internal/pkg/goroutine"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/mail"
	"github.com/putrafajarh/mailgate/internal/pkg/ratelimit"
	"github.com/putrafajarh/mailgate/internal/pkg/router"
	"github.com/putrafajarh/mailgate/internal/pkg/uid"
	"github.com/putrafajarh/mailgate/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	limiter   *ratelimit.FixedWindow

	// resources
	mail mail.Mail

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initMail()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
