// Package config defines how runtime configuration values are retrieved.
//
// The relay is configured entirely through environment-style key/value pairs
// (EMAIL_PROVIDER, SMTP_USER, ALLOWED_ORIGINS, ...). Business code depends on
// the Config interface; the concrete source (process environment plus an
// optional watched .env file) is implemented by Viper in this package.
package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of
// various types. Implementations should handle missing keys by returning the
// type's zero value so callers can layer their own defaults.
type Config interface {
	io.Closer

	// GetString retrieves the configuration value associated with the given key as a string.
	GetString(key string) string

	// GetInt retrieves the configuration value associated with the given key as an int.
	// If the value cannot be converted to an integer it returns 0.
	GetInt(key string) int

	// GetBool retrieves the configuration value associated with the given key as a bool.
	// If the value cannot be converted to a boolean it returns false.
	GetBool(key string) bool

	// GetArray retrieves the configuration value associated with the given key
	// as a slice of strings. Configuration value is stored with format
	// <element1>,<element2>,... Empty elements are dropped.
	GetArray(key string) []string

	// GetSecond retrieves the configuration value associated with the given key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the configuration value associated with the given key as minutes.
	GetMinute(key string) time.Duration
}
