package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrConfigNotLoaded is returned when a configuration could not be read back from the cache.
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrLoadingEnvFile is returned when a .env file cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrWeakSecret is returned when a signing secret is shorter than MinSecretLength.
	ErrWeakSecret = errors.New("signing secret is too short")

	// ErrInvalidBaseURL is returned when APP_BASE_URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL")
)
