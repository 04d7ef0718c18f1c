package datastore

import (
	"context"
	"fmt"

	"github.com/tvalderas/battfit-go/internal/conf"
	"github.com/tvalderas/battfit-go/internal/logging"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySQLStore implements Interface for MySQL.
type MySQLStore struct {
	DataStore
	Settings *conf.Settings
}

// Open sets up the MySQL database connection. The password is held in locked
// memory and only materialized while the DSN is being handed to the driver.
func (store *MySQLStore) Open(ctx context.Context) error {
	if store.DB != nil {
		return nil
	}

	dbSettings := &store.Settings.Database

	var db *gorm.DB
	err := dbSettings.Credential.Use(func(password string) error {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbSettings.Username, password,
			dbSettings.Host, dbSettings.Port,
			dbSettings.Name)

		var openErr error
		db, openErr = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: createGormLogger(store.Settings.Debug),
		})
		return openErr
	})
	if err != nil {
		logging.ForService("datastore").Error("Failed to open MySQL database",
			"host", dbSettings.Host,
			"port", dbSettings.Port,
			"database", dbSettings.Name,
			"error", err)
		return connectivityError(err, "open_mysql")
	}

	store.DB = db
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return err
	}
	return nil
}
