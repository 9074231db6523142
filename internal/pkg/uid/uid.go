// Package uid provides small identifier generators.
//
// The relay uses string IDs in two places: request correlation IDs attached to
// every inbound request, and the Message-ID header stamped on outbound email.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}
