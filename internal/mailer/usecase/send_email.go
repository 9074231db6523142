package usecase

import (
	"context"
	"log/slog"
	netmail "net/mail"
	"strings"

	"github.com/putrafajarh/mailgate/internal/mailer/entity"
	"github.com/putrafajarh/mailgate/internal/pkg/goerror"
	"github.com/putrafajarh/mailgate/internal/pkg/mail"
)

type SendEmailInput struct {
	To      string `validate:"required"`
	Subject string `validate:"required"`
	Text    string `validate:"required_without=HTML"`
	HTML    string
	From    string
}

// parseRecipients accepts any RFC 5322 address list, including display-name
// forms like "Jane <jane@example.com>" and comma-separated lists, and returns
// the bare addresses used for the SMTP envelope.
func parseRecipients(to string) ([]string, error) {
	list, err := netmail.ParseAddressList(to)
	if err != nil {
		return nil, err
	}

	addrs := make([]string, 0, len(list))
	for _, a := range list {
		addrs = append(addrs, a.Address)
	}

	return addrs, nil
}

// SendEmail validates the message, fills in derived fields, and dispatches it
// through the configured delivery backend. Validation failures never reach
// the network.
func (s *Usecase) SendEmail(ctx context.Context, in SendEmailInput) (*entity.Receipt, error) {
	ctx, span := s.startSpan(ctx, "SendEmail")
	defer span.End()

	in.To = strings.TrimSpace(in.To)
	in.Subject = strings.TrimSpace(in.Subject)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	recipients, err := parseRecipients(in.To)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "to", "to must be a valid email address or address list")
	}

	text := in.Text
	if text == "" {
		text = s.htmlToText(in.HTML)
	}

	from := in.From
	if from == "" {
		from = s.from
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.mailer.Send(ctx, mail.Message{
		From:     from,
		To:       recipients,
		Subject:  in.Subject,
		TextBody: text,
		HTMLBody: in.HTML,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send email", "to", in.To, "error", err)

		switch mail.Classify(err) {
		case mail.FaultAuth:
			return nil, goerror.NewUnauthorized(err, "Email authentication failed. Please check the server credentials.")
		case mail.FaultConnection:
			return nil, goerror.NewUnavailable(err, "Unable to reach the email server. Please try again later.")
		default:
			return nil, goerror.NewServer(err)
		}
	}

	return &entity.Receipt{MessageID: id}, nil
}
