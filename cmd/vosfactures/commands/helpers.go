package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/internal/events"
	"github.com/briceparent/vosfactures/internal/logging"
	"github.com/briceparent/vosfactures/internal/settings"
	"github.com/briceparent/vosfactures/pkg/vfclient"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// JSON formatting.
	defaultJSONIndent = 2

	// Table headers.
	headerProperty = "Property"
	headerValue    = "Value"
)

// ConfigPath returns the settings file used by the CLI.
func ConfigPath() (string, error) {
	if path := viper.GetString("config"); path != "" {
		return path, nil
	}

	path, err := settings.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}

	return path, nil
}

// LoadSettings resolves the settings, then applies the --host, --token and
// --verbose flags on top. A missing settings file is not an error as long as
// the flags provide a host and a token.
func LoadSettings() (*settings.Settings, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	loaded, err := settings.Load(path)

	switch {
	case errors.Is(err, settings.ErrSettingsNotFound):
		loaded = &settings.Settings{
			HTTPTimeout:  constants.DefaultHTTPTimeout,
			LogLevel:     constants.DefaultLogLevel,
			EventSubject: constants.DefaultEventSubjectPrefix,
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if host := viper.GetString("host"); host != "" {
		loaded.Host = host
	}

	if token := viper.GetString("token"); token != "" {
		loaded.APIToken = token
	}

	if viper.GetBool("verbose") {
		loaded.Debug = true
		loaded.LogLevel = "debug"
	}

	err = loaded.Validate()
	if err != nil {
		return nil, err
	}

	return loaded, nil
}

// Session is an API client together with the logger it reports to.
type Session struct {
	vosfactures.Client

	logger vosfactures.Logger
}

// Release closes the client. Failures, such as an event publisher that could
// not drain, are logged rather than returned since the command already ran.
func (s *Session) Release() {
	if err := s.Close(); err != nil {
		s.logger.Warn("failed to close client", map[string]interface{}{"error": err.Error()})
	}
}

// CreateClient builds an API client from the resolved settings. The caller
// must Release it to close the event publisher.
func CreateClient(ctx context.Context) (*Session, error) {
	loaded, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{Level: loaded.LogLevel, Console: true})
	loaded.WarnIfUnrestricted(logger)

	config := loaded.Config()
	config.Logger = logger

	var publisher *events.Publisher

	if loaded.NATSURL != "" {
		publisher, err = events.Connect(loaded.NATSURL, loaded.EventSubject)
		if err != nil {
			return nil, err
		}

		config.Publisher = publisher
	}

	client, err := vfclient.New(ctx, config)
	if err != nil {
		if publisher != nil {
			_ = publisher.Close()
		}

		return nil, err
	}

	return &Session{Client: client, logger: logger}, nil
}

// ParseFieldArgs turns key=value arguments into record fields. Values that
// look like JSON objects, arrays, quoted strings, booleans or null are
// decoded; everything else, numbers included, is kept as text.
func ParseFieldArgs(args []string) (vosfactures.Fields, error) {
	fields := vosfactures.Fields{}

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)

		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldArg, arg)
		}

		fields[key] = parseFieldValue(value)
	}

	return fields, nil
}

func parseFieldValue(value string) any {
	trimmed := strings.TrimSpace(value)

	switch {
	case trimmed == "true", trimmed == "false", trimmed == "null":
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["), strings.HasPrefix(trimmed, `"`):
	default:
		return value
	}

	decoder := json.NewDecoder(strings.NewReader(trimmed))
	decoder.UseNumber()

	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return value
	}

	return decoded
}

// ReadFieldsFile loads record fields from a YAML or JSON document.
func ReadFieldsFile(path string) (vosfactures.Fields, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read fields file: %w", err)
	}

	// Nested objects stay plain maps, as they would come out of JSON.
	var raw map[string]any

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fields file: %w", err)
	}

	if raw == nil {
		return vosfactures.Fields{}, nil
	}

	return vosfactures.Fields(raw), nil
}

// outputFormat returns the selected output format.
func outputFormat() (string, error) {
	output := viper.GetString("output")

	switch output {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, output)
	}
}

// encode writes value as JSON or YAML. It reports false for the table format.
func encode(w io.Writer, format string, value any) (bool, error) {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return true, encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		return true, encoder.Encode(value)
	default:
		return false, nil
	}
}

// RenderRecord prints a single record in the selected format.
func RenderRecord(w io.Writer, record *vosfactures.Record) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if done, err := encode(w, format, record); done {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(headerProperty, headerValue)

	for _, name := range record.Descriptor().FieldNames() {
		_ = table.Append(name, cellValue(record.Value(name)))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// RenderRecords prints a list of records in the selected format.
func RenderRecords(w io.Writer, records []*vosfactures.Record) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if records == nil {
		records = []*vosfactures.Record{}
	}

	if done, err := encode(w, format, records); done {
		return err
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No records found")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Record")

	for _, record := range records {
		_ = table.Append(record.IDString(), record.String())
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// cellValue renders nested values as compact JSON and scalars as text.
func cellValue(value any) string {
	switch value.(type) {
	case map[string]any, vosfactures.Fields, []any, []map[string]any, []vosfactures.Fields:
		var buf bytes.Buffer

		encoder := json.NewEncoder(&buf)
		encoder.SetEscapeHTML(false)

		if err := encoder.Encode(value); err != nil {
			return vosfactures.FormatValue(value)
		}

		return strings.TrimSpace(buf.String())
	default:
		return vosfactures.FormatValue(value)
	}
}
