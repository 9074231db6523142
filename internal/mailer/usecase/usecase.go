package usecase

import (
	"context"
	"html"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/trace"

	"github.com/putrafajarh/mailgate/internal/pkg/config"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/mail"
	"github.com/putrafajarh/mailgate/internal/pkg/validator"
)

const defaultSendTimeout = 30 * time.Second

type mailSender interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

type Usecase struct {
	cfg       config.Config
	validator validator.Validator
	mailer    mailSender
	ins       instrument.Instrumentation
	stripper  *bluemonday.Policy
	from      string
	timeout   time.Duration
}

type Dependency struct {
	Config     config.Config
	Validator  validator.Validator
	Mailer     mailSender
	Instrument instrument.Instrumentation
}

func NewMailer(dep Dependency) *Usecase {
	timeout := dep.Config.GetSecond("MAIL_SEND_TIMEOUT_SECONDS")
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &Usecase{
		cfg:       dep.Config,
		validator: dep.Validator,
		mailer:    dep.Mailer,
		ins:       dep.Instrument,
		stripper:  bluemonday.StrictPolicy(),
		from:      defaultSender(dep.Config),
		timeout:   timeout,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mailer.usecase").Start(ctx, name)
}

// htmlToText derives a plain-text alternative by stripping all markup and
// decoding entities.
func (s *Usecase) htmlToText(body string) string {
	return strings.TrimSpace(html.UnescapeString(s.stripper.Sanitize(body)))
}

func defaultSender(cfg config.Config) string {
	addr := netmail.Address{
		Name:    cfg.GetString("FROM_NAME"),
		Address: cfg.GetString("FROM_EMAIL"),
	}
	return addr.String()
}
