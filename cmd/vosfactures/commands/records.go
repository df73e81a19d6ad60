package commands

import (
	"fmt"

	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/spf13/cobra"
)

// recordGroup describes the command group of one entity.
type recordGroup struct {
	entity  string
	use     string
	aliases []string
	short   string
	long    string
}

// NewClientsCommand creates the clients command group.
func NewClientsCommand() *cobra.Command {
	return newRecordCommand(recordGroup{
		entity:  vosfactures.EntityClient,
		use:     "clients",
		aliases: []string{"client"},
		short:   "Manage clients",
		long:    "List, create, update and delete the clients of the account",
	})
}

// NewProductsCommand creates the products command group.
func NewProductsCommand() *cobra.Command {
	return newRecordCommand(recordGroup{
		entity:  vosfactures.EntityProduct,
		use:     "products",
		aliases: []string{"product"},
		short:   "Manage products",
		long:    "List, create, update and delete the products of the catalog",
	})
}

// NewDepartmentsCommand creates the departments command group. Departments
// are read only.
func NewDepartmentsCommand() *cobra.Command {
	return newRecordCommand(recordGroup{
		entity:  vosfactures.EntityDepartment,
		use:     "departments",
		aliases: []string{"department", "dept"},
		short:   "View departments",
		long:    "List and view the departments (seller companies) of the account",
	})
}

// NewInvoicesCommand creates the invoices command group.
func NewInvoicesCommand() *cobra.Command {
	cmd := newRecordCommand(recordGroup{
		entity:  vosfactures.EntityInvoice,
		use:     "invoices",
		aliases: []string{"invoice", "inv"},
		short:   "Manage invoices",
		long:    "List, create, update and delete invoices, and change their status",
	})

	cmd.AddCommand(newInvoicesSetStatusCommand())

	return cmd
}

// newRecordCommand adds one subcommand per operation the entity supports.
func newRecordCommand(group recordGroup) *cobra.Command {
	cmd := &cobra.Command{
		Use:     group.use,
		Aliases: group.aliases,
		Short:   group.short,
		Long:    group.long,
	}

	descriptor, err := vosfactures.LookupDescriptor(group.entity)
	if err != nil {
		panic(err)
	}

	builders := map[vosfactures.Operation]func(*vosfactures.Descriptor) *cobra.Command{
		vosfactures.OperationList:   newRecordListCommand,
		vosfactures.OperationGet:    newRecordGetCommand,
		vosfactures.OperationCreate: newRecordCreateCommand,
		vosfactures.OperationUpdate: newRecordUpdateCommand,
		vosfactures.OperationDelete: newRecordDeleteCommand,
	}

	for _, op := range vosfactures.AllOperations() {
		if descriptor.IsForbidden(op) {
			continue
		}

		cmd.AddCommand(builders[op](descriptor))
	}

	return cmd
}

func entityClient(client vosfactures.Client, descriptor *vosfactures.Descriptor) (vosfactures.RecordClient, error) {
	records, err := client.Entity(descriptor.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s records: %w", descriptor.Name, err)
	}

	return records, nil
}

func newRecordListCommand(descriptor *vosfactures.Descriptor) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s records", descriptor.Name),
		Long:  fmt.Sprintf("List every %s record of the account", descriptor.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Release()

			records, err := entityClient(client, descriptor)
			if err != nil {
				return err
			}

			list, err := records.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list %s records: %w", descriptor.Name, err)
			}

			return RenderRecords(cmd.OutOrStdout(), list)
		},
	}
}

func newRecordGetCommand(descriptor *vosfactures.Descriptor) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: fmt.Sprintf("Get a %s record", descriptor.Name),
		Long:  fmt.Sprintf("Display every field of a %s record", descriptor.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Release()

			records, err := entityClient(client, descriptor)
			if err != nil {
				return err
			}

			record, err := records.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get %s %s: %w", descriptor.Name, args[0], err)
			}

			return RenderRecord(cmd.OutOrStdout(), record)
		},
	}
}

func newRecordCreateCommand(descriptor *vosfactures.Descriptor) *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create [KEY=VALUE...]",
		Short: fmt.Sprintf("Create a %s record", descriptor.Name),
		Long: fmt.Sprintf(`Create a %s record from key=value arguments and/or a YAML or JSON file.

Arguments override the file. Values that look like JSON objects, arrays,
quoted strings, booleans or null are decoded, everything else is sent as text.

Required fields: %v`, descriptor.Name, descriptor.Required),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := vosfactures.Fields{}

			if fromFile != "" {
				loaded, err := ReadFieldsFile(fromFile)
				if err != nil {
					return err
				}

				fields = loaded
			}

			overrides, err := ParseFieldArgs(args)
			if err != nil {
				return err
			}

			for key, value := range overrides {
				fields[key] = value
			}

			if len(fields) == 0 {
				return constants.ErrNoFieldsProvided
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Release()

			records, err := entityClient(client, descriptor)
			if err != nil {
				return err
			}

			record, err := records.Create(cmd.Context(), fields)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", descriptor.Name, err)
			}

			return RenderRecord(cmd.OutOrStdout(), record)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "YAML or JSON file holding the record fields")

	return cmd
}

func newRecordUpdateCommand(descriptor *vosfactures.Descriptor) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID KEY=VALUE...",
		Short: fmt.Sprintf("Update a %s record", descriptor.Name),
		Long: fmt.Sprintf(`Fetch a %s record, change the given fields and save it.

Protected fields: %v`, descriptor.Name, descriptor.ProtectedFields()),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := ParseFieldArgs(args[1:])
			if err != nil {
				return err
			}

			if len(changes) == 0 {
				return constants.ErrNoFieldsProvided
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Release()

			records, err := entityClient(client, descriptor)
			if err != nil {
				return err
			}

			record, err := records.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get %s %s: %w", descriptor.Name, args[0], err)
			}

			for key, value := range changes {
				if err := record.SetField(key, value); err != nil {
					return err
				}
			}

			updated, err := record.Update(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to update %s %s: %w", descriptor.Name, args[0], err)
			}

			return RenderRecord(cmd.OutOrStdout(), updated)
		},
	}
}

func newRecordDeleteCommand(descriptor *vosfactures.Descriptor) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s record", descriptor.Name),
		Long:  fmt.Sprintf("Fetch a %s record and delete it", descriptor.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Release()

			records, err := entityClient(client, descriptor)
			if err != nil {
				return err
			}

			record, err := records.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get %s %s: %w", descriptor.Name, args[0], err)
			}

			err = record.Delete(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to delete %s %s: %w", descriptor.Name, args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s deleted\n", descriptor.Name, args[0])

			return err
		},
	}
}

func newInvoicesSetStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change the status of an invoice",
		Long: fmt.Sprintf(`Change the status of an invoice and save it.

Known statuses: %v`, vosfactures.Statuses()),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[1] == "" {
				return constants.ErrStatusRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Release()

			invoices := client.Invoices()

			record, err := invoices.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get invoice %s: %w", args[0], err)
			}

			updated, err := invoices.SetStatus(cmd.Context(), record, args[1])
			if err != nil {
				return fmt.Errorf("failed to set status of invoice %s: %w", args[0], err)
			}

			return RenderRecord(cmd.OutOrStdout(), updated)
		},
	}
}
