// Package mail defines the contracts for sending email messages.
//
// The main purpose is to keep the rest of the application independent from a
// specific delivery provider. Handlers and use cases work with the Mail
// interface and Message payload; the concrete transport is selected once at
// startup by NewFromProvider and shared, read-only, across all requests.
package mail
