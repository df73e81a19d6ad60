package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"

	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/internal/settings"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the settings file holding the account host, token and command table",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetTokenCommand())
	cmd.AddCommand(newConfigSetCommandsCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the settings file with the API token masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ConfigPath()
			if err != nil {
				return err
			}

			file, err := settings.ReadFile(path)
			if err != nil {
				return err
			}

			masked := file.Masked()

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if done, err := encode(cmd.OutOrStdout(), format, masked); done {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header(headerProperty, headerValue)

			_ = table.Append("File", path)
			_ = table.Append(settings.KeyHost, masked.Host)
			_ = table.Append(settings.KeyAPIToken, masked.APIToken)
			_ = table.Append(settings.KeyHTTPTimeout, masked.HTTPTimeout)
			_ = table.Append(settings.KeyUserAgent, masked.UserAgent)
			_ = table.Append(settings.KeyDebug, fmt.Sprintf("%t", masked.Debug))
			_ = table.Append(settings.KeyLogLevel, masked.LogLevel)
			_ = table.Append(settings.KeyNATSURL, masked.NATSURL)
			_ = table.Append(settings.KeyEventSubject, masked.EventSubject)

			entities := make([]string, 0, len(masked.AvailableCommands))
			for entity := range masked.AvailableCommands {
				entities = append(entities, entity)
			}

			sort.Strings(entities)

			for _, entity := range entities {
				_ = table.Append(settings.KeyAvailableCommands+"."+entity, strings.Join(masked.AvailableCommands[entity], ", "))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: fmt.Sprintf(`Set a value in the settings file.

Keys: %s`, strings.Join([]string{
			settings.KeyHost, settings.KeyAPIToken, settings.KeyHTTPTimeout, settings.KeyUserAgent,
			settings.KeyDebug, settings.KeyLogLevel, settings.KeyNATSURL, settings.KeyEventSubject,
		}, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := updateSettingsFile(func(file *settings.File) error {
				return file.Set(args[0], args[1])
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return err
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token",
		Short: "Store the API token",
		Long:  "Store the account API token, read from --token or prompted without echo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := viper.GetString("token")

			if token == "" {
				stdin := int(syscall.Stdin)
				if !term.IsTerminal(stdin) {
					return constants.ErrNotInteractiveTerm
				}

				fmt.Fprint(os.Stderr, "API token: ")

				tokenBytes, err := term.ReadPassword(stdin)
				fmt.Fprintln(os.Stderr)

				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = string(tokenBytes)
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return constants.ErrEmptyToken
			}

			err := updateSettingsFile(func(file *settings.File) error {
				return file.Set(settings.KeyAPIToken, token)
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stored API token %s\n", settings.MaskToken(token))

			return err
		},
	}
}

func newConfigSetCommandsCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "set-commands ENTITY [OPERATION...]",
		Short: "Set the operations allowed for an entity",
		Long: `Set the operations the client may run for an entity (Client, Product,
Department or Invoice). With no operation, every operation of the entity is
blocked. Use --clear to remove the command table and allow everything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset {
				err := updateSettingsFile(func(file *settings.File) error {
					file.AvailableCommands = nil

					return nil
				})
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Command table cleared, every operation is allowed")

				return err
			}

			if len(args) == 0 {
				return fmt.Errorf("%w: an entity name is required", vosfactures.ErrUnknownEntity)
			}

			descriptor, err := lookupEntity(args[0])
			if err != nil {
				return err
			}

			ops := make([]string, 0, len(args)-1)

			for _, name := range args[1:] {
				op, err := vosfactures.ParseOperation(name)
				if err != nil {
					return err
				}

				ops = append(ops, string(op))
			}

			err = updateSettingsFile(func(file *settings.File) error {
				if file.AvailableCommands == nil {
					file.AvailableCommands = map[string][]string{}
				}

				file.AvailableCommands[descriptor.Name] = ops

				return nil
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", descriptor.Name, strings.Join(ops, ", "))

			return err
		},
	}

	cmd.Flags().BoolVar(&reset, "clear", false, "remove the command table")

	return cmd
}

// updateSettingsFile reads the settings file, applies change and writes it back.
func updateSettingsFile(change func(*settings.File) error) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	file, err := settings.ReadFile(path)
	if err != nil {
		return err
	}

	err = change(file)
	if err != nil {
		return err
	}

	return settings.WriteFile(path, file)
}

// lookupEntity finds a descriptor by name, ignoring case.
func lookupEntity(name string) (*vosfactures.Descriptor, error) {
	for _, descriptor := range vosfactures.Descriptors() {
		if strings.EqualFold(descriptor.Name, name) {
			return descriptor, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", vosfactures.ErrUnknownEntity, name)
}
