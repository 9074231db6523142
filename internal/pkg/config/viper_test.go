package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestNewViperEnvReadsFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "EMAIL_PROVIDER=gmail\n" +
		"SMTP_PORT=587\n" +
		"SMTP_SECURE=true\n" +
		"ALLOWED_ORIGINS=https://a.example.com, https://b.example.com ,\n" +
		"RATE_LIMIT_WINDOW_MINUTES=15\n" +
		"HTTP_CLIENT_TIMEOUT_SECONDS=15\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	// Act
	cfg, err := NewViperEnv(envFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cfg.Close()

	// Assert
	if got := cfg.GetString("EMAIL_PROVIDER"); got != "gmail" {
		t.Fatalf("EMAIL_PROVIDER = %q, want gmail", got)
	}
	if got := cfg.GetInt("SMTP_PORT"); got != 587 {
		t.Fatalf("SMTP_PORT = %d, want 587", got)
	}
	if !cfg.GetBool("SMTP_SECURE") {
		t.Fatal("SMTP_SECURE should be true")
	}
	wantOrigins := []string{"https://a.example.com", "https://b.example.com"}
	if got := cfg.GetArray("ALLOWED_ORIGINS"); !reflect.DeepEqual(got, wantOrigins) {
		t.Fatalf("ALLOWED_ORIGINS = %v, want %v", got, wantOrigins)
	}
	if got := cfg.GetMinute("RATE_LIMIT_WINDOW_MINUTES"); got != 15*time.Minute {
		t.Fatalf("RATE_LIMIT_WINDOW_MINUTES = %v, want 15m", got)
	}
	if got := cfg.GetSecond("HTTP_CLIENT_TIMEOUT_SECONDS"); got != 15*time.Second {
		t.Fatalf("HTTP_CLIENT_TIMEOUT_SECONDS = %v, want 15s", got)
	}
}

func TestNewViperEnvMissingFileIsFine(t *testing.T) {
	cfg, err := NewViperEnv(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("a missing env file should not be an error, got %v", err)
	}
	defer cfg.Close()

	if got := cfg.GetString("NO_SUCH_KEY"); got != "" {
		t.Fatalf("missing key = %q, want empty", got)
	}
}

func TestViperEnvProcessEnvironment(t *testing.T) {
	t.Setenv("MAILGATE_TEST_VALUE", "from-env")

	cfg, err := NewViperEnv("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cfg.Close()

	if got := cfg.GetString("MAILGATE_TEST_VALUE"); got != "from-env" {
		t.Fatalf("value = %q, want from-env", got)
	}
}

func TestGetArrayEmptyValue(t *testing.T) {
	cfg, err := NewViperEnv("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cfg.Close()

	if got := cfg.GetArray("UNSET_LIST"); len(got) != 0 {
		t.Fatalf("unset list = %v, want empty", got)
	}
}
