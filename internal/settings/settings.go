// Package settings loads the client configuration, either from the
// environment of a host framework or from the fallback settings file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// ErrSettingsNotFound is returned when neither the environment nor the
// settings file provide a configuration.
var ErrSettingsNotFound = errors.New("settings file not found")

// Source names where the settings were read from.
const (
	SourceEnvironment = "environment"
	SourceFile        = "file"
)

// Settings is the resolved process configuration.
type Settings struct {
	Host         string
	APIToken     string
	Commands     vosfactures.CommandTable
	HTTPTimeout  time.Duration
	UserAgent    string
	Debug        bool
	LogLevel     string
	NATSURL      string
	EventSubject string
	Source       string
}

// settingsEnv holds raw env values.
type settingsEnv struct {
	Host         string        `env:"VOSFACTURES_HOST"`
	APIToken     string        `env:"VOSFACTURES_API_TOKEN"`
	CommandsJSON string        `env:"VOSFACTURES_AVAILABLE_COMMANDS"`
	HTTPTimeout  time.Duration `env:"VOSFACTURES_HTTP_TIMEOUT"      envDefault:"30s"`
	UserAgent    string        `env:"VOSFACTURES_USER_AGENT"`
	Debug        bool          `env:"VOSFACTURES_DEBUG"`
	LogLevel     string        `env:"VOSFACTURES_LOG_LEVEL"         envDefault:"info"`
	NATSURL      string        `env:"VOSFACTURES_NATS_URL"`
	EventSubject string        `env:"VOSFACTURES_EVENT_SUBJECT"     envDefault:"vosfactures"`
}

// Load reads the environment when VOSFACTURES_HOST is set, and the settings
// file at path otherwise. An empty path means DefaultPath.
func Load(path string) (*Settings, error) {
	if os.Getenv(constants.EnvHost) != "" {
		return FromEnvironment()
	}

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}

		path = defaultPath
	}

	return FromFile(path)
}

// FromEnvironment reads every setting from VOSFACTURES_* variables.
func FromEnvironment() (*Settings, error) {
	var raw settingsEnv

	err := env.Parse(&raw)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	commands, err := parseCommandsJSON(raw.CommandsJSON)
	if err != nil {
		return nil, err
	}

	return &Settings{
		Host:         raw.Host,
		APIToken:     raw.APIToken,
		Commands:     commands,
		HTTPTimeout:  raw.HTTPTimeout,
		UserAgent:    raw.UserAgent,
		Debug:        raw.Debug,
		LogLevel:     raw.LogLevel,
		NATSURL:      raw.NATSURL,
		EventSubject: raw.EventSubject,
		Source:       SourceEnvironment,
	}, nil
}

// FromFile reads the YAML settings file.
func FromFile(path string) (*Settings, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(constants.ConfigFileType)

	err = v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	settings, err := FromViper(v)
	if err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}

	return settings, nil
}

// FromViper reads settings from a viper instance using the file keys.
// available_commands may be a mapping or a JSON string.
func FromViper(v *viper.Viper) (*Settings, error) {
	v.SetDefault(KeyHTTPTimeout, constants.DefaultHTTPTimeout)
	v.SetDefault(KeyLogLevel, constants.DefaultLogLevel)
	v.SetDefault(KeyEventSubject, constants.DefaultEventSubjectPrefix)

	var commands vosfactures.CommandTable

	var err error

	switch raw := v.Get(KeyAvailableCommands).(type) {
	case nil:
	case string:
		commands, err = parseCommandsJSON(raw)
	default:
		commands, err = parseCommands(v.GetStringMapStringSlice(KeyAvailableCommands))
	}

	if err != nil {
		return nil, err
	}

	return &Settings{
		Host:         v.GetString(KeyHost),
		APIToken:     v.GetString(KeyAPIToken),
		Commands:     commands,
		HTTPTimeout:  v.GetDuration(KeyHTTPTimeout),
		UserAgent:    v.GetString(KeyUserAgent),
		Debug:        v.GetBool(KeyDebug),
		LogLevel:     v.GetString(KeyLogLevel),
		NATSURL:      v.GetString(KeyNATSURL),
		EventSubject: v.GetString(KeyEventSubject),
		Source:       SourceFile,
	}, nil
}

// DefaultPath returns $HOME/.vosfactures/config.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

// Validate checks that the settings can build a client.
func (s *Settings) Validate() error {
	if s.Host == "" {
		return constants.ErrNoHostConfigured
	}

	if s.APIToken == "" {
		return constants.ErrNoTokenConfigured
	}

	return nil
}

// Config converts the settings into a client configuration.
func (s *Settings) Config() *vosfactures.Config {
	return &vosfactures.Config{
		Host:        s.Host,
		APIToken:    s.APIToken,
		Commands:    s.Commands.Clone(),
		HTTPTimeout: s.HTTPTimeout,
		UserAgent:   s.UserAgent,
		Debug:       s.Debug,
	}
}

// WarnIfUnrestricted logs a warning when no command table is configured,
// since every operation of every entity is then allowed. It reports whether
// the warning was emitted.
func (s *Settings) WarnIfUnrestricted(logger vosfactures.Logger) bool {
	if s.Commands != nil || logger == nil {
		return false
	}

	logger.Warn("no available_commands configured, every operation is allowed", map[string]interface{}{
		"source": s.Source,
	})

	return true
}

func parseCommandsJSON(raw string) (vosfactures.CommandTable, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var commands map[string][]string

	err := json.Unmarshal([]byte(raw), &commands)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidCommandJSON, err)
	}

	return parseCommands(commands)
}

// parseCommands builds the command table. Entity names are matched without
// regard to case, since viper lowercases mapping keys.
func parseCommands(raw map[string][]string) (vosfactures.CommandTable, error) {
	canonical := make(map[string][]string, len(raw))

	for name, ops := range raw {
		entity, err := canonicalEntity(name)
		if err != nil {
			return nil, err
		}

		canonical[entity] = ops
	}

	table, err := vosfactures.ParseCommandTable(canonical)
	if err != nil {
		return nil, fmt.Errorf("available commands: %w", err)
	}

	return table, nil
}

func canonicalEntity(name string) (string, error) {
	for _, descriptor := range vosfactures.Descriptors() {
		if strings.EqualFold(descriptor.Name, name) {
			return descriptor.Name, nil
		}
	}

	return "", fmt.Errorf("available commands: %w: %q", vosfactures.ErrUnknownEntity, name)
}
