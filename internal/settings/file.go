package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/briceparent/vosfactures/internal/constants"
	"gopkg.in/yaml.v3"
)

// Settings file keys.
const (
	KeyHost              = "host"
	KeyAPIToken          = "api_token"
	KeyAvailableCommands = "available_commands"
	KeyHTTPTimeout       = "http_timeout"
	KeyUserAgent         = "user_agent"
	KeyDebug             = "debug"
	KeyLogLevel          = "log_level"
	KeyNATSURL           = "nats_url"
	KeyEventSubject      = "event_subject"
)

// File is the on-disk layout of the settings file.
type File struct {
	Host              string              `json:"host,omitempty"               yaml:"host,omitempty"`
	APIToken          string              `json:"api_token,omitempty"          yaml:"api_token,omitempty"`
	AvailableCommands map[string][]string `json:"available_commands,omitempty" yaml:"available_commands,omitempty"`
	HTTPTimeout       string              `json:"http_timeout,omitempty"       yaml:"http_timeout,omitempty"`
	UserAgent         string              `json:"user_agent,omitempty"         yaml:"user_agent,omitempty"`
	Debug             bool                `json:"debug,omitempty"              yaml:"debug,omitempty"`
	LogLevel          string              `json:"log_level,omitempty"          yaml:"log_level,omitempty"`
	NATSURL           string              `json:"nats_url,omitempty"           yaml:"nats_url,omitempty"`
	EventSubject      string              `json:"event_subject,omitempty"      yaml:"event_subject,omitempty"`
}

// ReadFile loads the settings file. A missing file yields an empty File.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's settings file
	if errors.Is(err, fs.ErrNotExist) {
		return &File{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	file := &File{}

	err = yaml.Unmarshal(data, file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return file, nil
}

// WriteFile saves the settings file, creating its directory when needed.
func WriteFile(path string, file *File) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Set assigns a scalar key. available_commands is edited through the file
// directly since it is a mapping.
func (f *File) Set(key, value string) error {
	switch key {
	case KeyHost:
		f.Host = value
	case KeyAPIToken:
		f.APIToken = value
	case KeyHTTPTimeout:
		f.HTTPTimeout = value
	case KeyUserAgent:
		f.UserAgent = value
	case KeyDebug:
		f.Debug = value == "true" || value == "1"
	case KeyLogLevel:
		f.LogLevel = value
	case KeyNATSURL:
		f.NATSURL = value
	case KeyEventSubject:
		f.EventSubject = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// Masked returns a copy whose token is hidden.
func (f *File) Masked() *File {
	masked := *f
	masked.APIToken = MaskToken(f.APIToken)

	return &masked
}

// MaskToken hides all but the last characters of a token.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}

	if len(token) < constants.MinTokenLengthForMasking {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + token[len(token)-4:]
}
