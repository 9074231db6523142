package mail

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ProviderGmail selects Gmail's SMTP relay with an app password.
	ProviderGmail = "gmail"
	// ProviderCustom selects a self-hosted or third-party SMTP server.
	ProviderCustom = "custom"
	// ProviderSendGrid selects SendGrid's SMTP relay with an API key.
	ProviderSendGrid = "sendgrid"
)

// SendGrid's relay fixes the username; the API key is the password.
const (
	gmailHost        = "smtp.gmail.com"
	sendgridHost     = "smtp.sendgrid.net"
	sendgridUsername = "apikey"
	submissionPort   = 587
)

// ErrUnknownProvider indicates an unsupported email provider name.
var ErrUnknownProvider = errors.New("mail: unknown provider")

// GmailOptions configures the Gmail provider.
type GmailOptions struct {
	// Username is the Gmail account address.
	Username string
	// AppPassword is a Google app password, not the account password.
	AppPassword string
}

// CustomOptions configures an arbitrary SMTP server.
type CustomOptions struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Secure selects implicit TLS (typically port 465) instead of STARTTLS.
	Secure bool
	// Username is the SMTP authentication username.
	Username string
	// Password is the SMTP authentication password.
	Password string
}

// SendGridOptions configures the SendGrid provider.
type SendGridOptions struct {
	// APIKey is a SendGrid API key with mail-send permission.
	APIKey string
}

// FactoryOptions groups configuration for all supported providers.
type FactoryOptions struct {
	// Gmail configures the gmail provider.
	Gmail GmailOptions
	// Custom configures the custom provider.
	Custom CustomOptions
	// SendGrid configures the sendgrid provider.
	SendGrid SendGridOptions
}

// NewFromProvider constructs a Mail implementation by provider name.
//
// An unrecognized provider is a startup error; the process must refuse to run
// with an undefined transport.
func NewFromProvider(provider string, opts FactoryOptions) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderGmail:
		return NewSMTP(SMTPConfig{
			Host:     gmailHost,
			Port:     submissionPort,
			Username: opts.Gmail.Username,
			Password: opts.Gmail.AppPassword,
		})
	case ProviderCustom:
		return NewSMTP(SMTPConfig{
			Host:     opts.Custom.Host,
			Port:     opts.Custom.Port,
			Secure:   opts.Custom.Secure,
			Username: opts.Custom.Username,
			Password: opts.Custom.Password,
		})
	case ProviderSendGrid:
		return NewSMTP(SMTPConfig{
			Host:     sendgridHost,
			Port:     submissionPort,
			Username: sendgridUsername,
			Password: opts.SendGrid.APIKey,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}
