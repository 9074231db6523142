package mail

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"os"
)

// Fault buckets transport failures so the dispatch layer can map them to a
// uniform response contract.
type Fault int

const (
	// FaultGeneric is any failure that is neither credentials nor connectivity.
	FaultGeneric Fault = iota
	// FaultAuth means the server rejected the configured credentials. The
	// operator has to fix it; retrying the same request will not help.
	FaultAuth
	// FaultConnection means the server could not be reached or the exchange
	// timed out. Transient; the caller may retry later.
	FaultConnection
)

// SMTP reply codes that signal rejected credentials (RFC 4954).
const (
	codeAuthRequired      = 530
	codeAuthMechanismWeak = 534
	codeAuthInvalid       = 535
)

// Classify buckets a transport error by its reported cause.
func Classify(err error) Fault {
	if err == nil {
		return FaultGeneric
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case codeAuthRequired, codeAuthMechanismWeak, codeAuthInvalid:
			return FaultAuth
		case 421: // service not available, closing channel
			return FaultConnection
		}
		return FaultGeneric
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return FaultConnection
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FaultConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FaultConnection
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FaultConnection
	}

	return FaultGeneric
}
