// Package seed implements the seed subcommand, the full bootstrap sequence.
package seed

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tvalderas/battfit-go/internal/conf"
	"github.com/tvalderas/battfit-go/internal/logging"
	pipeline "github.com/tvalderas/battfit-go/internal/seed"
)

// Command creates the seed command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Wait for the store, migrate the schema and seed the reference data",
		Long:  "Polls the storage service until it accepts connections, creates or updates the schema, then upserts batteries, vehicle configurations and fitment links in order. Safe to re-run; records are matched by natural key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.ForService("seed")

			// An optional rotating file log keeps a record of each run for
			// deployments where stdout is not retained.
			var fileLog *slog.Logger
			if settings.Main.Log.Enabled {
				fl, closeLog, err := logging.NewFileLogger(settings.Main.Log.Path, "seed", slog.LevelInfo)
				if err != nil {
					log.Warn("failed to open run log file", "path", settings.Main.Log.Path, "error", err)
				} else {
					fileLog = fl
					defer func() {
						if err := closeLog(); err != nil {
							log.Warn("failed to close run log file", "error", err)
						}
					}()
				}
			}

			result, err := pipeline.Bootstrap(cmd.Context(), settings)
			attrs := []any{
				"state", result.State.String(),
				"batteries", result.Batteries,
				"configurations", result.Configurations,
				"fitments", result.Fitments,
			}
			if err != nil {
				log.Error("bootstrap failed", append(attrs, "error", err)...)
				if fileLog != nil {
					fileLog.Error("bootstrap failed", append(attrs, "error", err)...)
				}
				return err
			}

			log.Info("bootstrap complete", attrs...)
			if fileLog != nil {
				fileLog.Info("bootstrap complete", attrs...)
			}
			return nil
		},
	}
}
