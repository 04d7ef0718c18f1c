package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tvalderas/battfit-go/cmd/seed"
	"github.com/tvalderas/battfit-go/cmd/verify"
	"github.com/tvalderas/battfit-go/cmd/wait"
	"github.com/tvalderas/battfit-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "battfit",
		Short: "Battery fitment store bootstrap",
		Long:  "Waits for the relational store to accept connections, migrates the schema and seeds the battery compatibility reference data.",
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		rootCmd.PrintErrf("error setting up flags: %v\n", err)
	}

	rootCmd.AddCommand(
		seed.Command(settings),
		wait.Command(settings),
		verify.Command(settings),
	)

	// Flags may have changed connection or probe settings; re-check the
	// invariants before any subcommand touches the store.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface.
// Defaults come from viper so the precedence stays flags > env > config
// file > built-in defaults.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	flags := rootCmd.PersistentFlags()

	flags.BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	flags.StringVar(&settings.Database.Type, "db-type", viper.GetString("database.type"), "Database type (sqlite or mysql)")
	flags.StringVar(&settings.Database.Host, "db-host", viper.GetString("database.host"), "Database host")
	flags.StringVar(&settings.Database.Port, "db-port", viper.GetString("database.port"), "Database port")
	flags.StringVar(&settings.Database.Name, "db-name", viper.GetString("database.name"), "Database name")
	flags.StringVar(&settings.Database.Username, "db-user", viper.GetString("database.username"), "Database username")
	flags.StringVar(&settings.Database.SQLite.Path, "sqlite-path", viper.GetString("database.sqlite.path"), "SQLite database file path")
	flags.DurationVar(&settings.Probe.Interval, "probe-interval", viper.GetDuration("probe.interval"), "Delay between readiness probe attempts")
	flags.IntVar(&settings.Probe.MaxAttempts, "probe-max-attempts", viper.GetInt("probe.maxattempts"), "Probe attempt budget, 0 for unbounded")

	if err := viper.BindPFlags(flags); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
