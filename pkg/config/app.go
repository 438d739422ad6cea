package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// MinSecretLength is the minimum accepted length of EMAIL_CHANGE_SECRET.
// 32 bytes matches the output size of HMAC-SHA256.
const MinSecretLength = 32

// Secret is a sensitive configuration value. It never renders in fmt or slog output.
type Secret string

// Bytes returns the raw secret.
func (s Secret) Bytes() []byte { return []byte(s) }

func (s Secret) String() string   { return "REDACTED" }
func (s Secret) GoString() string { return "config.Secret(REDACTED)" }

func (s Secret) LogValue() slog.Value { return slog.StringValue("REDACTED") }

// App is the application configuration.
type App struct {
	Name    string `env:"APP_NAME" envDefault:"coreflowhr"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// EmailChangeSecret signs email change confirmation tokens.
	// Rotating it invalidates every outstanding confirmation link.
	EmailChangeSecret Secret        `env:"EMAIL_CHANGE_SECRET,required,unset"`
	EmailChangeTTL    time.Duration `env:"EMAIL_CHANGE_TTL" envDefault:"1h"`

	// Confirmation mails a user may trigger per window.
	EmailChangeRateLimit  int           `env:"EMAIL_CHANGE_RATE_LIMIT" envDefault:"5"`
	EmailChangeRateWindow time.Duration `env:"EMAIL_CHANGE_RATE_WINDOW" envDefault:"1h"`

	// SupabaseJWTSecret verifies access tokens issued by the identity provider.
	SupabaseJWTSecret   Secret `env:"SUPABASE_JWT_SECRET,required,unset"`
	SupabaseJWTAudience string `env:"SUPABASE_JWT_AUDIENCE" envDefault:"authenticated"`

	// EmailDevDir switches outgoing mail to files on disk when set.
	EmailDevDir string `env:"EMAIL_DEV_DIR"`

	// TrustProxyHeaders reads the client address from forwarded headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// Validate checks values that env tags cannot express.
func (a App) Validate() error {
	var errs []error

	if len(a.EmailChangeSecret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("%w: EMAIL_CHANGE_SECRET must be at least %d bytes", ErrWeakSecret, MinSecretLength))
	}
	if a.SupabaseJWTSecret == "" {
		errs = append(errs, fmt.Errorf("%w: SUPABASE_JWT_SECRET is empty", ErrWeakSecret))
	}
	if a.EmailChangeTTL < time.Second {
		errs = append(errs, fmt.Errorf("%w: EMAIL_CHANGE_TTL must be at least 1s", ErrParsingConfig))
	}

	if a.EmailChangeRateLimit <= 0 || a.EmailChangeRateWindow < time.Second {
		errs = append(errs, fmt.Errorf("%w: EMAIL_CHANGE_RATE_LIMIT must be positive and EMAIL_CHANGE_RATE_WINDOW at least 1s", ErrParsingConfig))
	}

	u, err := url.Parse(a.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBaseURL, a.BaseURL))
	}

	return errors.Join(errs...)
}
