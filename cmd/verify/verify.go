// Package verify implements the verify subcommand, reporting the row counts
// of the seeded tables.
package verify

import (
	"github.com/spf13/cobra"

	"github.com/tvalderas/battfit-go/internal/conf"
	"github.com/tvalderas/battfit-go/internal/datastore"
	"github.com/tvalderas/battfit-go/internal/logging"
)

// Command creates the verify command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Report row counts for the seeded tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.ForService("verify")

			store := datastore.New(settings)
			if err := store.Open(ctx); err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Warn("failed to close store", "error", err)
				}
			}()

			batteries, err := store.CountBatteries(ctx)
			if err != nil {
				return err
			}
			configs, err := store.CountVehicleConfigurations(ctx)
			if err != nil {
				return err
			}
			fitments, err := store.CountFitments(ctx)
			if err != nil {
				return err
			}

			log.Info("seeded table counts",
				"batteries", batteries,
				"vehicle_configurations", configs,
				"fitments", fitments)
			cmd.Printf("batteries: %d\nvehicle_configurations: %d\nfitments: %d\n",
				batteries, configs, fitments)
			return nil
		},
	}
}
