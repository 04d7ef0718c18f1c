package seed

import (
	"context"

	"github.com/tvalderas/battfit-go/internal/canonical"
	"github.com/tvalderas/battfit-go/internal/conf"
	"github.com/tvalderas/battfit-go/internal/datastore"
	"github.com/tvalderas/battfit-go/internal/logging"
	"github.com/tvalderas/battfit-go/internal/probe"
)

// Bootstrap runs the full startup sequence against the configured storage
// service: wait for readiness, migrate the schema, then seed the embedded
// data sets in order. It is the library entry point behind the seed command.
func Bootstrap(ctx context.Context, settings *conf.Settings) (Result, error) {
	log := logging.ForService("seed")
	failed := Result{State: StateFailed}

	store := datastore.New(settings)

	prober := probe.New(nil)
	policy := probe.Policy{
		Interval:    settings.Probe.Interval,
		MaxAttempts: settings.Probe.MaxAttempts,
	}
	if err := prober.WaitUntilReady(ctx, store.Open, policy); err != nil {
		return failed, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close store", "error", err)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return failed, err
	}

	canon, err := canonical.Default()
	if err != nil {
		return failed, err
	}
	sources, err := DefaultSources()
	if err != nil {
		return failed, err
	}

	return NewPipeline(store, canon, sources, log).Run(ctx)
}
