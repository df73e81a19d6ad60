package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// NATSConnectTimeout bounds the initial connection to the event broker.
	NATSConnectTimeout = 5 * time.Second
)

// HTTP client identification.
const (
	// DefaultUserAgent is sent when the configuration does not override it.
	DefaultUserAgent = "vosfactures-go/1.0"

	// RequestIDHeader carries a unique id per request for support tickets.
	RequestIDHeader = "X-Request-Id"

	// ContentTypeJSON is the only content type spoken by the API.
	ContentTypeJSON = "application/json"
)

// Wire envelope.
const (
	// APITokenKey is the envelope key carrying the account token.
	APITokenKey = "api_token"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// MinTokenLengthForMasking is the length below which tokens are fully masked.
	MinTokenLengthForMasking = 8
)

// Settings.
const (
	// EnvPrefix prefixes every environment variable read by the module.
	EnvPrefix = "VOSFACTURES"

	// EnvHost marks a host-framework configuration when set.
	EnvHost = "VOSFACTURES_HOST"

	// ConfigDirName is the directory holding the fallback settings file.
	ConfigDirName = ".vosfactures"

	// ConfigFileName is the fallback settings file name, without extension.
	ConfigFileName = "config"

	// ConfigFileType is the fallback settings file format.
	ConfigFileType = "yml"

	// DefaultEventSubjectPrefix is the NATS subject prefix for record events.
	DefaultEventSubjectPrefix = "vosfactures"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Logging.
const (
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)
