// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"context"

	"github.com/tvalderas/battfit-go/internal/conf"
	"github.com/tvalderas/battfit-go/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Interface abstracts the underlying database implementation and defines the
// operations the bootstrap pipeline needs.
type Interface interface {
	// Open establishes and verifies the database connection. It is
	// idempotent: calling it on an open store is a no-op. It does not
	// modify the schema.
	Open(ctx context.Context) error
	// Migrate creates or updates the schema for the seeded tables.
	Migrate(ctx context.Context) error
	// Ping checks connectivity on the established connection.
	Ping(ctx context.Context) error
	Close() error

	UpsertBattery(ctx context.Context, battery *Battery) error
	GetBattery(ctx context.Context, brand, modelCode string) (Battery, error)
	CountBatteries(ctx context.Context) (int64, error)

	UpsertVehicleConfiguration(ctx context.Context, config *VehicleConfiguration) error
	FindVehicleConfiguration(ctx context.Context, makeName, model string, yearStart, yearEnd int, engineDetails string) (VehicleConfiguration, error)
	CountVehicleConfigurations(ctx context.Context) (int64, error)

	UpsertFitment(ctx context.Context, batteryID string, configID uint) error
	CountFitments(ctx context.Context) (int64, error)
}

// DataStore implements the shared database operations using a GORM database.
type DataStore struct {
	DB *gorm.DB
}

// New creates a store for the configured database type.
func New(settings *conf.Settings) Interface {
	switch settings.Database.Type {
	case conf.DatabaseSQLite:
		return &SQLiteStore{Settings: settings}
	case conf.DatabaseMySQL:
		return &MySQLStore{Settings: settings}
	default:
		// conf.ValidateSettings rejects other values before this point.
		return nil
	}
}

// Migrate creates or updates the schema for the seeded tables.
func (ds *DataStore) Migrate(ctx context.Context) error {
	if ds.DB == nil {
		return notOpenError("migrate")
	}
	err := ds.DB.WithContext(ctx).AutoMigrate(
		&Battery{},
		&VehicleConfiguration{},
		&BatteryFitment{},
	)
	if err != nil {
		return dbError(err, "auto_migrate")
	}
	return nil
}

// Ping verifies the established connection is still serving.
func (ds *DataStore) Ping(ctx context.Context) error {
	if ds.DB == nil {
		return notOpenError("ping")
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return connectivityError(err, "ping")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return connectivityError(err, "ping")
	}
	return nil
}

// Close closes the underlying SQL connection pool.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return dbError(err, "close")
	}
	if err := sqlDB.Close(); err != nil {
		return dbError(err, "close")
	}
	ds.DB = nil
	return nil
}

// UpsertBattery inserts the battery or updates the existing row matching its
// natural key (brand, model code). Re-applying an identical record is a no-op.
func (ds *DataStore) UpsertBattery(ctx context.Context, battery *Battery) error {
	if battery.Brand == "" || battery.ModelCode == "" {
		return validationError("battery requires brand and model code", "battery", battery.ModelCode)
	}
	battery.ID = GenerateBatteryID(battery.Brand, battery.ModelCode)

	var existing Battery
	err := ds.DB.WithContext(ctx).
		Where("brand = ? AND model_code = ?", battery.Brand, battery.ModelCode).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := ds.DB.WithContext(ctx).Create(battery).Error; err != nil {
			return dbError(err, "create_battery", "battery_id", battery.ID)
		}
		return nil
	case err != nil:
		return dbError(err, "lookup_battery", "battery_id", battery.ID)
	}

	updates := map[string]any{}
	if existing.ItemName != battery.ItemName {
		updates["item_name"] = battery.ItemName
	}
	if existing.Description != battery.Description {
		updates["description"] = battery.Description
	}
	if existing.WarrantyMonths != battery.WarrantyMonths {
		updates["warranty_months"] = battery.WarrantyMonths
	}
	if existing.PriceRegular != battery.PriceRegular {
		updates["price_regular"] = battery.PriceRegular
	}
	if existing.PriceDiscount != battery.PriceDiscount {
		updates["price_discount"] = battery.PriceDiscount
	}
	if existing.Stock != battery.Stock {
		updates["stock"] = battery.Stock
	}
	if len(updates) == 0 {
		battery.ID = existing.ID
		return nil
	}

	if err := ds.DB.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return dbError(err, "update_battery", "battery_id", existing.ID)
	}
	battery.ID = existing.ID
	return nil
}

// GetBattery returns the battery matching the natural key.
func (ds *DataStore) GetBattery(ctx context.Context, brand, modelCode string) (Battery, error) {
	var battery Battery
	err := ds.DB.WithContext(ctx).
		Where("brand = ? AND model_code = ?", brand, modelCode).
		First(&battery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Battery{}, notFoundError("battery", brand+" "+modelCode)
	}
	if err != nil {
		return Battery{}, dbError(err, "get_battery")
	}
	return battery, nil
}

// CountBatteries returns the number of battery rows.
func (ds *DataStore) CountBatteries(ctx context.Context) (int64, error) {
	var count int64
	if err := ds.DB.WithContext(ctx).Model(&Battery{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count_batteries")
	}
	return count, nil
}

// UpsertVehicleConfiguration inserts the configuration or updates the
// existing row matching its natural key (make, model, year range, engine).
func (ds *DataStore) UpsertVehicleConfiguration(ctx context.Context, config *VehicleConfiguration) error {
	if config.Make == "" || config.Model == "" {
		return validationError("vehicle configuration requires make and model", "config", config.Model)
	}

	var existing VehicleConfiguration
	err := ds.DB.WithContext(ctx).
		Where(map[string]any{
			"make":           config.Make,
			"model":          config.Model,
			"year_start":     config.YearStart,
			"year_end":       config.YearEnd,
			"engine_details": config.EngineDetails,
		}).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := ds.DB.WithContext(ctx).Create(config).Error; err != nil {
			return dbError(err, "create_vehicle_config", "make", config.Make, "model", config.Model)
		}
		return nil
	case err != nil:
		return dbError(err, "lookup_vehicle_config", "make", config.Make, "model", config.Model)
	}

	config.ID = existing.ID
	if existing.Notes == config.Notes {
		return nil
	}
	if err := ds.DB.WithContext(ctx).Model(&existing).Update("notes", config.Notes).Error; err != nil {
		return dbError(err, "update_vehicle_config", "config_id", existing.ID)
	}
	return nil
}

// FindVehicleConfiguration returns the configuration matching the natural key.
func (ds *DataStore) FindVehicleConfiguration(ctx context.Context, makeName, model string, yearStart, yearEnd int, engineDetails string) (VehicleConfiguration, error) {
	var config VehicleConfiguration
	err := ds.DB.WithContext(ctx).
		Where(map[string]any{
			"make":           makeName,
			"model":          model,
			"year_start":     yearStart,
			"year_end":       yearEnd,
			"engine_details": engineDetails,
		}).
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return VehicleConfiguration{}, notFoundError("vehicle configuration", makeName+" "+model)
	}
	if err != nil {
		return VehicleConfiguration{}, dbError(err, "find_vehicle_config")
	}
	return config, nil
}

// CountVehicleConfigurations returns the number of configuration rows.
func (ds *DataStore) CountVehicleConfigurations(ctx context.Context) (int64, error) {
	var count int64
	if err := ds.DB.WithContext(ctx).Model(&VehicleConfiguration{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count_vehicle_configs")
	}
	return count, nil
}

// UpsertFitment links a battery to a vehicle configuration. Both parents
// must already exist; a missing parent is a not-found error, never a
// silently created orphan. Re-linking an existing pair is a no-op.
func (ds *DataStore) UpsertFitment(ctx context.Context, batteryID string, configID uint) error {
	var battery Battery
	err := ds.DB.WithContext(ctx).Where("id = ?", batteryID).First(&battery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError("battery", batteryID)
	}
	if err != nil {
		return dbError(err, "lookup_fitment_battery", "battery_id", batteryID)
	}

	var config VehicleConfiguration
	err = ds.DB.WithContext(ctx).Where("id = ?", configID).First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError("vehicle configuration", configID)
	}
	if err != nil {
		return dbError(err, "lookup_fitment_config", "config_id", configID)
	}

	fitment := BatteryFitment{BatteryID: batteryID, VehicleConfigurationID: configID}
	err = ds.DB.WithContext(ctx).
		Omit(clause.Associations).
		Where("battery_id = ? AND vehicle_configuration_id = ?", batteryID, configID).
		FirstOrCreate(&fitment).Error
	if err != nil {
		return dbError(err, "upsert_fitment", "battery_id", batteryID, "config_id", configID)
	}
	return nil
}

// CountFitments returns the number of fitment link rows.
func (ds *DataStore) CountFitments(ctx context.Context) (int64, error) {
	var count int64
	if err := ds.DB.WithContext(ctx).Model(&BatteryFitment{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count_fitments")
	}
	return count, nil
}
