package main

import (
	"fmt"
	"os"

	"github.com/briceparent/vosfactures/cmd/vosfactures/commands"
	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/internal/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "vosfactures",
	Short: "VosFactures invoicing API CLI",
	Long: `A command-line interface for the VosFactures invoicing API.

It manages the clients, products, departments and invoices of an account,
within the operations allowed by the configured command table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.vosfactures/config.yml)")
	rootCmd.PersistentFlags().String("host", "", "account host, such as acme.vosfactures.fr")
	rootCmd.PersistentFlags().StringP("token", "t", "", "account API token")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log HTTP requests and responses")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewClientsCommand())
	rootCmd.AddCommand(commands.NewProductsCommand())
	rootCmd.AddCommand(commands.NewDepartmentsCommand())
	rootCmd.AddCommand(commands.NewInvoicesCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile == "" {
		path, err := settings.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		cfgFile = path
	}

	viper.SetConfigFile(cfgFile)
	viper.SetConfigType(constants.ConfigFileType)

	// Read in environment variables that match
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	// A missing file is fine, settings may come from the environment.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
