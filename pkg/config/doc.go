// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing) and caches every parsed
// configuration type for the lifetime of the process, so values such as
// signing secrets are read exactly once at startup and shared read-only.
//
// # Usage
//
//	var app config.App
//	config.MustLoad(&app)
//	if err := app.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// Infrastructure packages expose their own tagged Config structs (pg.Config,
// redis.Config, email.Config, httpserver.Config) loaded the same way.
//
// Secret fields use the Secret type, which renders as REDACTED in fmt and
// slog output, and are removed from the process environment after parsing
// (the env "unset" option).
//
// # Error Handling
//
// Errors are sentinel values that can be compared with errors.Is:
// ErrParsingConfig, ErrNilPointer, ErrLoadingEnvFile, ErrWeakSecret and
// ErrInvalidBaseURL.
package config
