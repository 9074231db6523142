package mail

import (
	"context"
	"io"
)

// Message represents an email payload.
//
// Fields are provider-agnostic; normalization (deriving a text body, filling
// the sender) happens in the dispatch use case before a Message reaches a
// transport.
type Message struct {
	// From is the sender, already normalized by the caller.
	From string
	// To lists required recipients.
	To []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail abstracts an email delivery transport.
//
// Implementations must be safe for concurrent use; a single handle serves all
// in-flight requests.
type Mail interface {
	io.Closer

	// Send dispatches the given message and returns the Message-ID assigned
	// to it. Errors are raw transport errors; use Classify to bucket them.
	Send(ctx context.Context, msg Message) (string, error)

	// Verify checks that the transport is reachable and, when credentials are
	// configured, that they are accepted. It makes no delivery.
	Verify(ctx context.Context) error
}
