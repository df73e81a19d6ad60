package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/internal/settings"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfigFile(t *testing.T) string {
	t.Helper()

	resetViper(t)

	path := filepath.Join(t.TempDir(), ".vosfactures", "config.yml")
	viper.Set("config", path)

	return path
}

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.ElementsMatch(t, []string{"show", "set", "set-token", "set-commands"}, subcommandNames(cmd))
}

func TestConfigSetAndShow(t *testing.T) {
	path := useConfigFile(t)

	_, err := execute(t, NewConfigCommand(), "set", settings.KeyHost, "acme.vosfactures.fr")
	require.NoError(t, err)

	_, err = execute(t, NewConfigCommand(), "set", settings.KeyAPIToken, "0123456789abcdef")
	require.NoError(t, err)

	file, err := settings.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "acme.vosfactures.fr", file.Host)
	assert.Equal(t, "0123456789abcdef", file.APIToken)

	viper.Set("output", "json")

	out, err := execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "0123456789abcdef")

	var shown map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "***cdef", shown["api_token"])

	viper.Set("output", "table")

	out, err = execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "acme.vosfactures.fr")
	assert.Contains(t, out, "***cdef")
}

func TestConfigSet_UnknownKey(t *testing.T) {
	useConfigFile(t)

	_, err := execute(t, NewConfigCommand(), "set", "colour", "blue")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)
}

func TestConfigSetToken_FromFlag(t *testing.T) {
	path := useConfigFile(t)
	viper.Set("token", "  fedcba9876543210 ")

	out, err := execute(t, NewConfigCommand(), "set-token")
	require.NoError(t, err)
	assert.Contains(t, out, "***3210")

	file, err := settings.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fedcba9876543210", file.APIToken)
}

func TestConfigSetCommands(t *testing.T) {
	path := useConfigFile(t)

	_, err := execute(t, NewConfigCommand(), "set", settings.KeyHost, "acme.vosfactures.fr")
	require.NoError(t, err)

	out, err := execute(t, NewConfigCommand(), "set-commands", "client", "get", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Client: get, list")

	_, err = execute(t, NewConfigCommand(), "set-commands", "Invoice")
	require.NoError(t, err)

	loaded, err := settings.FromFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.Commands.Allows(vosfactures.EntityClient, vosfactures.OperationList))
	assert.False(t, loaded.Commands.Allows(vosfactures.EntityClient, vosfactures.OperationDelete))
	assert.False(t, loaded.Commands.Allows(vosfactures.EntityInvoice, vosfactures.OperationGet))

	_, err = execute(t, NewConfigCommand(), "set-commands", "--clear")
	require.NoError(t, err)

	loaded, err = settings.FromFile(path)
	require.NoError(t, err)
	assert.Nil(t, loaded.Commands)
}

func TestConfigSetCommands_Invalid(t *testing.T) {
	useConfigFile(t)

	_, err := execute(t, NewConfigCommand(), "set-commands", "Payment", "get")
	require.ErrorIs(t, err, vosfactures.ErrUnknownEntity)

	_, err = execute(t, NewConfigCommand(), "set-commands", "Client", "archive")
	require.ErrorIs(t, err, vosfactures.ErrUnknownOperation)
}

func TestVersionCommand(t *testing.T) {
	resetViper(t)
	viper.Set("output", "json")

	out, err := execute(t, NewVersionCommand("1.2.3", "abc123", "2024-05-01"))
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, VersionInfo{Version: "1.2.3", Commit: "abc123", Built: "2024-05-01"}, info)
}
