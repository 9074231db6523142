package app

import (
	"strconv"
	"testing"
	"time"
)

type fakeConfig struct {
	values map[string]string
}

func (f *fakeConfig) Close() error                { return nil }
func (f *fakeConfig) GetString(key string) string { return f.values[key] }
func (f *fakeConfig) GetInt(key string) int {
	n, _ := strconv.Atoi(f.values[key])
	return n
}
func (f *fakeConfig) GetBool(key string) bool        { return f.values[key] == "true" }
func (f *fakeConfig) GetArray(string) []string       { return nil }
func (f *fakeConfig) GetSecond(string) time.Duration { return 0 }
func (f *fakeConfig) GetMinute(string) time.Duration { return 0 }

// Deployments carry these exact key names; the mapping must never drift.
func TestMailFactoryOptionsConfigKeys(t *testing.T) {
	cfg := &fakeConfig{values: map[string]string{
		"SMTP_USER":         "relay@example.com",
		"SMTP_APP_PASSWORD": "gmail-app-secret",
		"SMTP_HOST":         "mail.example.com",
		"SMTP_PORT":         "465",
		"SMTP_SECURE":       "true",
		"SMTP_PASSWORD":     "custom-secret",
		"SENDGRID_API_KEY":  "SG.key",
	}}

	opts := mailFactoryOptions(cfg)

	if opts.Gmail.Username != "relay@example.com" {
		t.Fatalf("Gmail.Username = %q, want value of SMTP_USER", opts.Gmail.Username)
	}
	if opts.Gmail.AppPassword != "gmail-app-secret" {
		t.Fatalf("Gmail.AppPassword = %q, want value of SMTP_APP_PASSWORD", opts.Gmail.AppPassword)
	}
	if opts.Custom.Host != "mail.example.com" || opts.Custom.Port != 465 || !opts.Custom.Secure {
		t.Fatalf("Custom transport = %+v, want SMTP_HOST/SMTP_PORT/SMTP_SECURE values", opts.Custom)
	}
	if opts.Custom.Username != "relay@example.com" {
		t.Fatalf("Custom.Username = %q, want value of SMTP_USER", opts.Custom.Username)
	}
	if opts.Custom.Password != "custom-secret" {
		t.Fatalf("Custom.Password = %q, want value of SMTP_PASSWORD", opts.Custom.Password)
	}
	if opts.SendGrid.APIKey != "SG.key" {
		t.Fatalf("SendGrid.APIKey = %q, want value of SENDGRID_API_KEY", opts.SendGrid.APIKey)
	}
}
