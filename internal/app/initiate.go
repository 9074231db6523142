package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/putrafajarh/mailgate/internal/pkg/clock"
	"github.com/putrafajarh/mailgate/internal/pkg/config"
	"github.com/putrafajarh/mailgate/internal/pkg/goroutine"
	"github.com/putrafajarh/mailgate/internal/pkg/instrument"
	"github.com/putrafajarh/mailgate/internal/pkg/mail"
	"github.com/putrafajarh/mailgate/internal/pkg/ratelimit"
	"github.com/putrafajarh/mailgate/internal/pkg/router"
	"github.com/putrafajarh/mailgate/internal/pkg/uid"
	"github.com/putrafajarh/mailgate/internal/pkg/validator"
)

const (
	defaultServiceName     = "mailgate"
	defaultPort            = "8080"
	defaultRateLimitMax    = 10
	defaultRateLimitWindow = 15 * time.Minute
	verifyTimeout          = 10 * time.Second
)

func (a *App) initConfig() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	cfg, err := config.NewViperEnv(envFile)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	serviceName := a.config.GetString("SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	ins, err := instrument.New(context.Background(), &instrument.Config{
		ServiceName:     serviceName,
		ServiceVersion:  a.config.GetString("SERVICE_VERSION"),
		Environment:     a.config.GetString("NODE_ENV"),
		OTLPEndpoint:    a.config.GetString("OTLP_ENDPOINT"),
		OTLPSecure:      a.config.GetBool("OTLP_SECURE"),
		MetricsInterval: a.config.GetSecond("OTLP_METRIC_INTERVAL_SECONDS"),
		MaskFields:      a.config.GetArray("LOG_MASK_FIELDS"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("MAX_GOROUTINE"))

	v10, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = v10

	limit := a.config.GetInt("RATE_LIMIT_MAX")
	if limit <= 0 {
		limit = defaultRateLimitMax
	}
	window := a.config.GetMinute("RATE_LIMIT_WINDOW_MINUTES")
	if window <= 0 {
		window = defaultRateLimitWindow
	}
	a.limiter = ratelimit.NewFixedWindow(limit, window, a.clock)
}

// mailFactoryOptions maps configuration keys to provider credentials. The key
// names are a compatibility contract with existing deployments; renaming one
// silently empties a credential.
func mailFactoryOptions(cfg config.Config) mail.FactoryOptions {
	return mail.FactoryOptions{
		Gmail: mail.GmailOptions{
			Username:    cfg.GetString("SMTP_USER"),
			AppPassword: cfg.GetString("SMTP_APP_PASSWORD"),
		},
		Custom: mail.CustomOptions{
			Host:     cfg.GetString("SMTP_HOST"),
			Port:     cfg.GetInt("SMTP_PORT"),
			Secure:   cfg.GetBool("SMTP_SECURE"),
			Username: cfg.GetString("SMTP_USER"),
			Password: cfg.GetString("SMTP_PASSWORD"),
		},
		SendGrid: mail.SendGridOptions{
			APIKey: cfg.GetString("SENDGRID_API_KEY"),
		},
	}
}

func (a *App) initMail() {
	provider := a.config.GetString("EMAIL_PROVIDER")

	m, err := mail.NewFromProvider(provider, mailFactoryOptions(a.config))
	if err != nil {
		slog.Error("failed to init mail transport", "error", err, "provider", provider)
		os.Exit(1)
	}
	a.mail = m

	// Verification is best-effort: a provider outage at boot should not keep
	// the process from serving, so it runs in the background and only warns.
	a.goroutine.Go(a.ctx, func(ctx context.Context) error {
		vctx, cancel := context.WithTimeout(ctx, verifyTimeout)
		defer cancel()

		if err := a.mail.Verify(vctx); err != nil {
			slog.WarnContext(ctx, "mail transport verification failed", "error", err, "provider", provider)
			return nil
		}

		slog.InfoContext(ctx, "mail transport verified", "provider", provider)
		return nil
	})
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:        a.config,
		UUID:          a.uuid,
		Instrument:    a.ins,
		ExposeDetails: a.config.GetString("NODE_ENV") != "production",
	})

	a.registerSystemRoutes()

	guard := router.NewOriginGuard(a.config.GetArray("ALLOWED_ORIGINS"))

	port := a.config.GetString("PORT")
	if port == "" {
		port = defaultPort
	}

	a.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           guard.Handler(a.router),
		ReadTimeout:       durationOr(a.config.GetSecond("HTTP_READ_TIMEOUT_SECONDS"), 15*time.Second),
		ReadHeaderTimeout: durationOr(a.config.GetSecond("HTTP_READ_HEADER_TIMEOUT_SECONDS"), 5*time.Second),
		WriteTimeout:      durationOr(a.config.GetSecond("HTTP_WRITE_TIMEOUT_SECONDS"), 60*time.Second),
		IdleTimeout:       durationOr(a.config.GetSecond("HTTP_IDLE_TIMEOUT_SECONDS"), 90*time.Second),
	}
}

func (a *App) registerSystemRoutes() {
	serviceName := a.config.GetString("SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	writePayload := func(w http.ResponseWriter, payload any) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		//nolint:errcheck // best-effort system payload
		json.NewEncoder(w).Encode(payload)
	}

	a.router.GETRaw("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePayload(w, map[string]string{
			"status":    "ok",
			"service":   serviceName,
			"timestamp": a.clock.Now().UTC().Format(time.RFC3339),
		})
	}))

	a.router.GETRaw("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePayload(w, map[string]any{
			"service": serviceName,
			"version": a.config.GetString("SERVICE_VERSION"),
			"endpoints": map[string]string{
				"health":        "GET /health",
				"send_email":    "POST /api/send-email",
				"anilist_token": "POST /api/oauth/anilist/token",
				"mal_token":     "POST /api/oauth/mal/token",
			},
		})
	}))
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Mail",
			fn: func(context.Context) error {
				return a.mail.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
