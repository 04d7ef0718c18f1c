// Package seed populates the compatibility store's foundational reference
// data in dependency order: batteries first, then vehicle configurations,
// then the fitment links that join them. Every step canonicalizes
// manufacturer names inline and upserts by natural key, so repeated runs
// leave the same final row set.
package seed

import (
	"context"
	"log/slog"

	"github.com/tvalderas/battfit-go/internal/canonical"
	"github.com/tvalderas/battfit-go/internal/datastore"
	"github.com/tvalderas/battfit-go/internal/errors"
	"github.com/tvalderas/battfit-go/internal/logging"
)

// Result reports per-step upsert counts and the terminal state of a run.
type Result struct {
	Batteries      int
	Configurations int
	Fitments       int
	State          State
}

// Pipeline runs the ordered seed steps against an open, migrated store.
// A Pipeline is single-use: construct, Run once, inspect the result.
type Pipeline struct {
	store   datastore.Interface
	canon   *canonical.Canonicalizer
	sources Sources
	log     *slog.Logger
	state   State
}

// NewPipeline builds a pipeline over the given store, canonicalizer and
// data sources. A nil logger falls back to the service logger.
func NewPipeline(store datastore.Interface, canon *canonical.Canonicalizer, sources Sources, log *slog.Logger) *Pipeline {
	if log == nil {
		log = logging.ForService("seed")
	}
	return &Pipeline{
		store:   store,
		canon:   canon,
		sources: sources,
		log:     log,
		state:   StateNotStarted,
	}
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes the three steps strictly in order. The caller must have
// verified readiness and migrated the schema first. Any step error aborts
// the run immediately: later steps never execute against incomplete earlier
// data, and the pipeline lands in the Failed state. Rows upserted before the
// failure are kept; idempotent upserts make a retry safe.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	result := Result{State: StateFailed}

	if p.state != StateNotStarted {
		return result, errors.Newf("pipeline already ran (state %s)", p.state).
			Component("seed").
			Category(errors.CategoryValidation).
			Build()
	}

	p.state = StateSeedingBatteries
	n, err := p.seedBatteries(ctx)
	result.Batteries = n
	if err != nil {
		p.state = StateFailed
		return result, err
	}
	p.log.Info("seeded batteries", "upserted", n)

	p.state = StateSeedingConfigurations
	n, err = p.seedConfigurations(ctx)
	result.Configurations = n
	if err != nil {
		p.state = StateFailed
		return result, err
	}
	p.log.Info("seeded vehicle configurations", "upserted", n)

	p.state = StateSeedingFitments
	n, err = p.seedFitments(ctx)
	result.Fitments = n
	if err != nil {
		p.state = StateFailed
		return result, err
	}
	p.log.Info("seeded battery fitments", "upserted", n)

	p.state = StateComplete
	result.State = StateComplete
	return result, nil
}

// seedBatteries upserts every battery record, canonicalizing the brand.
func (p *Pipeline) seedBatteries(ctx context.Context) (int, error) {
	count := 0
	for i, raw := range p.sources.Batteries {
		if raw.Brand == "" || raw.ModelCode == "" {
			return count, stepError(
				errors.Newf("battery entry #%d is missing brand or model_code", i+1).Build(),
				"batteries")
		}

		battery := datastore.Battery{
			Brand:          p.canon.Canonicalize(raw.Brand),
			ModelCode:      raw.ModelCode,
			ItemName:       raw.ItemName,
			Description:    raw.Description,
			WarrantyMonths: raw.WarrantyMonths,
			PriceRegular:   raw.PriceRegular,
			PriceDiscount:  raw.PriceDiscount,
			Stock:          raw.Stock,
		}
		if err := p.store.UpsertBattery(ctx, &battery); err != nil {
			return count, stepError(err, "batteries")
		}
		count++
	}
	return count, nil
}

// seedConfigurations upserts every vehicle configuration, canonicalizing
// the make. A make with no alias mapping is seeded as-is and logged, never
// rejected; incomplete alias coverage must not block startup.
func (p *Pipeline) seedConfigurations(ctx context.Context) (int, error) {
	count := 0
	for i, raw := range p.sources.Configurations {
		if raw.Make == "" || raw.Model == "" || raw.YearStart == 0 || raw.YearEnd == 0 {
			return count, stepError(
				errors.Newf("vehicle configuration entry #%d is missing make, model or year range", i+1).Build(),
				"configurations")
		}
		if raw.YearStart > raw.YearEnd {
			return count, stepError(
				errors.Newf("vehicle configuration entry #%d has year_start after year_end", i+1).Build(),
				"configurations")
		}

		if !p.canon.Known(raw.Make) {
			p.log.Warn("vehicle make not in alias table, seeding unnormalized",
				"make", raw.Make, "model", raw.Model)
		}

		config := datastore.VehicleConfiguration{
			Make:          p.canon.Canonicalize(raw.Make),
			Model:         raw.Model,
			YearStart:     raw.YearStart,
			YearEnd:       raw.YearEnd,
			EngineDetails: raw.EngineDetails,
			Notes:         raw.Notes,
		}
		if err := p.store.UpsertVehicleConfiguration(ctx, &config); err != nil {
			return count, stepError(err, "configurations")
		}
		count++
	}
	return count, nil
}

// seedFitments resolves each link's parents by natural key and upserts the
// pair. Parents were created by the earlier steps; a reference that does not
// resolve is a hard error, not a silently skipped or orphaned row.
func (p *Pipeline) seedFitments(ctx context.Context) (int, error) {
	count := 0
	for _, raw := range p.sources.Fitments {
		battery, err := p.store.GetBattery(ctx, p.canon.Canonicalize(raw.Brand), raw.ModelCode)
		if err != nil {
			return count, stepError(err, "fitments")
		}

		config, err := p.store.FindVehicleConfiguration(ctx,
			p.canon.Canonicalize(raw.Make), raw.Model, raw.YearStart, raw.YearEnd, raw.EngineDetails)
		if err != nil {
			return count, stepError(err, "fitments")
		}

		if err := p.store.UpsertFitment(ctx, battery.ID, config.ID); err != nil {
			return count, stepError(err, "fitments")
		}
		count++
	}
	return count, nil
}

// stepError tags a step failure so callers can tell it apart from probe
// and configuration failures.
func stepError(err error, step string) error {
	return errors.New(err).
		Component("seed").
		Category(errors.CategoryStepWrite).
		Context("step", step).
		Build()
}
