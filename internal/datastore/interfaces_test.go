// interfaces_test.go: Unit tests for the seed-facing database operations
package datastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvalderas/battfit-go/internal/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DataStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to create test database")

	ds := &DataStore{DB: db}
	require.NoError(t, ds.Migrate(context.Background()), "Failed to migrate schema")
	return ds
}

func testBattery() *Battery {
	return &Battery{
		Brand:          "Fulgor",
		ModelCode:      "F22NF-750",
		ItemName:       "Fulgor F22NF-750",
		WarrantyMonths: 18,
		PriceRegular:   126.37,
		Stock:          10,
	}
}

func TestUpsertBattery(t *testing.T) {
	ctx := context.Background()

	t.Run("InsertNew", func(t *testing.T) {
		ds := setupTestDB(t)

		battery := testBattery()
		require.NoError(t, ds.UpsertBattery(ctx, battery))
		assert.Equal(t, "fulgor_f22nf_750", battery.ID)

		count, err := ds.CountBatteries(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ReapplyIdenticalIsNoOp", func(t *testing.T) {
		ds := setupTestDB(t)

		require.NoError(t, ds.UpsertBattery(ctx, testBattery()))
		require.NoError(t, ds.UpsertBattery(ctx, testBattery()))

		count, err := ds.CountBatteries(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "re-upsert must not insert a duplicate")
	})

	t.Run("UpdateChangedFields", func(t *testing.T) {
		ds := setupTestDB(t)

		require.NoError(t, ds.UpsertBattery(ctx, testBattery()))

		updated := testBattery()
		updated.PriceRegular = 131.50
		updated.Stock = 4
		require.NoError(t, ds.UpsertBattery(ctx, updated))

		got, err := ds.GetBattery(ctx, "Fulgor", "F22NF-750")
		require.NoError(t, err)
		assert.InDelta(t, 131.50, got.PriceRegular, 0.001)
		assert.Equal(t, 4, got.Stock)

		count, err := ds.CountBatteries(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("RejectMissingNaturalKey", func(t *testing.T) {
		ds := setupTestDB(t)

		err := ds.UpsertBattery(ctx, &Battery{Brand: "Fulgor"})
		require.Error(t, err)
		assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
	})
}

func TestUpsertVehicleConfiguration(t *testing.T) {
	ctx := context.Background()

	config := func() *VehicleConfiguration {
		return &VehicleConfiguration{
			Make:          "Toyota",
			Model:         "Corolla",
			YearStart:     2015,
			YearEnd:       2019,
			EngineDetails: "1.8L",
		}
	}

	t.Run("InsertAndReapply", func(t *testing.T) {
		ds := setupTestDB(t)

		require.NoError(t, ds.UpsertVehicleConfiguration(ctx, config()))
		require.NoError(t, ds.UpsertVehicleConfiguration(ctx, config()))

		count, err := ds.CountVehicleConfigurations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("DistinctEngineDetailsIsDistinctRow", func(t *testing.T) {
		ds := setupTestDB(t)

		require.NoError(t, ds.UpsertVehicleConfiguration(ctx, config()))

		other := config()
		other.EngineDetails = "2.0L"
		require.NoError(t, ds.UpsertVehicleConfiguration(ctx, other))

		count, err := ds.CountVehicleConfigurations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("NotesUpdated", func(t *testing.T) {
		ds := setupTestDB(t)

		require.NoError(t, ds.UpsertVehicleConfiguration(ctx, config()))

		withNotes := config()
		withNotes.Notes = "sedan only"
		require.NoError(t, ds.UpsertVehicleConfiguration(ctx, withNotes))

		got, err := ds.FindVehicleConfiguration(ctx, "Toyota", "Corolla", 2015, 2019, "1.8L")
		require.NoError(t, err)
		assert.Equal(t, "sedan only", got.Notes)
	})
}

func TestUpsertFitment(t *testing.T) {
	ctx := context.Background()

	seedParents := func(t *testing.T, ds *DataStore) (string, uint) {
		t.Helper()
		battery := testBattery()
		require.NoError(t, ds.UpsertBattery(ctx, battery))

		config := &VehicleConfiguration{
			Make: "Chevrolet", Model: "Aveo", YearStart: 2006, YearEnd: 2011,
		}
		require.NoError(t, ds.UpsertVehicleConfiguration(ctx, config))
		return battery.ID, config.ID
	}

	t.Run("LinkAndRelink", func(t *testing.T) {
		ds := setupTestDB(t)
		batteryID, configID := seedParents(t, ds)

		require.NoError(t, ds.UpsertFitment(ctx, batteryID, configID))
		require.NoError(t, ds.UpsertFitment(ctx, batteryID, configID))

		count, err := ds.CountFitments(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "re-linking the same pair must not duplicate")
	})

	t.Run("MissingBatteryFailsWithoutOrphan", func(t *testing.T) {
		ds := setupTestDB(t)
		_, configID := seedParents(t, ds)

		err := ds.UpsertFitment(ctx, "no_such_battery", configID)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))

		count, err := ds.CountFitments(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count, "failed link must not create an orphan row")
	})

	t.Run("MissingConfigurationFails", func(t *testing.T) {
		ds := setupTestDB(t)
		batteryID, _ := seedParents(t, ds)

		err := ds.UpsertFitment(ctx, batteryID, 9999)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestGenerateBatteryID(t *testing.T) {
	assert.Equal(t, "fulgor_f22nf_750", GenerateBatteryID("Fulgor", "F22NF-750"))
	assert.Equal(t, "fulgor_ns40_670", GenerateBatteryID("Fulgor", "NS40 - 670"))
	assert.Equal(t, "black_edition_bn94r_1200", GenerateBatteryID("Black Edition", "BN94R-1200"))
	assert.Equal(t, "fulgor", GenerateBatteryID("Fulgor", "  "))
	assert.Equal(t, "", GenerateBatteryID("", ""))
}
