package constants

import "errors"

// Configuration errors.
var (
	ErrNoHostConfigured   = errors.New("no host configured, use 'vosfactures config set host <host>' or set VOSFACTURES_HOST")
	ErrNoTokenConfigured  = errors.New("no API token configured, use 'vosfactures config set-token' or set VOSFACTURES_API_TOKEN")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrInvalidCommandJSON = errors.New("available commands must be a JSON object of entity to operation list")
)

// Command line errors.
var (
	ErrUnsupportedFormat  = errors.New("unsupported output format")
	ErrInvalidFieldArg    = errors.New("field arguments must look like key=value")
	ErrNoFieldsProvided   = errors.New("at least one key=value field is required")
	ErrEmptyToken         = errors.New("token cannot be empty")
	ErrStatusRequired     = errors.New("status argument is required")
	ErrNotInteractiveTerm = errors.New("standard input is not a terminal, pass the token with --token")
)
