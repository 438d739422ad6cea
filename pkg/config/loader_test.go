package config_test

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendus-stephan/coreflowhr/pkg/config"
)

type fileConfig struct {
	Name     string `env:"TEST_APP_NAME"`
	Port     int    `env:"TEST_APP_PORT"`
	Override string `env:"TEST_APP_OVERRIDE"`
}

type defaultsConfig struct {
	Value string        `env:"TEST_DEFAULTS_VALUE" envDefault:"fallback"`
	TTL   time.Duration `env:"TEST_DEFAULTS_TTL" envDefault:"90s"`
}

type cachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "fallback", cfg.Value)
	assert.Equal(t, 90*time.Second, cfg.TTL)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CACHED_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("TEST_CACHED_VALUE", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "value must come from the cache")

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	config.ResetCache()
	os.Unsetenv("TEST_REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("TEST_REQUIRED_VALUE", "now-set")
	require.NoError(t, config.Load(&cfg), "failed parse must not be cached")
	assert.Equal(t, "now-set", cfg.Required)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	require.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()
	os.Unsetenv("TEST_REQUIRED_VALUE")

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("TEST_APP_NAME", "")
	t.Setenv("TEST_APP_PORT", "")
	t.Setenv("TEST_APP_OVERRIDE", "")
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.app", "testdata/.env.override"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "second", cfg.Override)

	require.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
}

func validApp() config.App {
	return config.App{
		Name:              "coreflowhr",
		Env:               "test",
		BaseURL:           "https://app.example.com",
		EmailChangeSecret: config.Secret(strings.Repeat("k", config.MinSecretLength)),
		EmailChangeTTL:    time.Hour,
		SupabaseJWTSecret: "supabase-secret",

		EmailChangeRateLimit:  5,
		EmailChangeRateWindow: time.Hour,
	}
}

func TestApp_Load(t *testing.T) {
	config.ResetCache()
	t.Setenv("EMAIL_CHANGE_SECRET", strings.Repeat("s", 40))
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")
	t.Setenv("EMAIL_CHANGE_TTL", "30m")

	var app config.App
	require.NoError(t, config.Load(&app))
	assert.Equal(t, strings.Repeat("s", 40), string(app.EmailChangeSecret.Bytes()))
	assert.Equal(t, 30*time.Minute, app.EmailChangeTTL)
	assert.Equal(t, "authenticated", app.SupabaseJWTAudience)
	assert.Equal(t, 5, app.EmailChangeRateLimit)
	assert.Equal(t, time.Hour, app.EmailChangeRateWindow)
	assert.False(t, app.TrustProxyHeaders)
	assert.NoError(t, app.Validate())

	_, present := os.LookupEnv("EMAIL_CHANGE_SECRET")
	assert.False(t, present, "secret must be removed from the environment")
}

func TestApp_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.App)
		wantErr error
	}{
		{name: "valid", mutate: func(*config.App) {}},
		{name: "short secret", mutate: func(a *config.App) { a.EmailChangeSecret = "short" }, wantErr: config.ErrWeakSecret},
		{name: "empty supabase secret", mutate: func(a *config.App) { a.SupabaseJWTSecret = "" }, wantErr: config.ErrWeakSecret},
		{name: "tiny ttl", mutate: func(a *config.App) { a.EmailChangeTTL = time.Millisecond }, wantErr: config.ErrParsingConfig},
		{name: "zero rate limit", mutate: func(a *config.App) { a.EmailChangeRateLimit = 0 }, wantErr: config.ErrParsingConfig},
		{name: "relative base url", mutate: func(a *config.App) { a.BaseURL = "/confirm" }, wantErr: config.ErrInvalidBaseURL},
		{name: "ftp base url", mutate: func(a *config.App) { a.BaseURL = "ftp://example.com" }, wantErr: config.ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := validApp()
			tt.mutate(&app)
			err := app.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSecret_Redacted(t *testing.T) {
	t.Parallel()

	s := config.Secret("top-secret-value")
	assert.Equal(t, "REDACTED", s.String())
	assert.NotContains(t, fmt.Sprintf("%v %s %+v %#v", s, s, validApp(), s), "top-secret-value")
	assert.Equal(t, "REDACTED", s.LogValue().String())
	assert.Equal(t, slog.KindString, s.LogValue().Kind())
}
