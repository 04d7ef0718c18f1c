// Package wait implements the wait subcommand, a readiness probe without
// any writes. Useful as an init-container or healthcheck gate.
package wait

import (
	"github.com/spf13/cobra"

	"github.com/tvalderas/battfit-go/internal/conf"
	"github.com/tvalderas/battfit-go/internal/datastore"
	"github.com/tvalderas/battfit-go/internal/logging"
	"github.com/tvalderas/battfit-go/internal/probe"
)

// Command creates the wait command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "wait",
		Short: "Wait until the storage service accepts connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.ForService("wait")

			store := datastore.New(settings)
			policy := probe.Policy{
				Interval:    settings.Probe.Interval,
				MaxAttempts: settings.Probe.MaxAttempts,
			}
			if err := probe.New(nil).WaitUntilReady(cmd.Context(), store.Open, policy); err != nil {
				return err
			}
			if err := store.Close(); err != nil {
				log.Warn("failed to close store after probe", "error", err)
			}
			return nil
		},
	}
}
