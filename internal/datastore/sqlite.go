package datastore

import (
	"context"

	"github.com/tvalderas/battfit-go/internal/conf"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteStore implements Interface for SQLite.
type SQLiteStore struct {
	DataStore
	Settings *conf.Settings
}

// Open sets up the SQLite database connection.
func (store *SQLiteStore) Open(ctx context.Context) error {
	if store.DB != nil {
		return nil
	}

	path := store.Settings.Database.SQLite.Path

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: createGormLogger(store.Settings.Debug),
	})
	if err != nil {
		return connectivityError(err, "open_sqlite")
	}

	store.DB = db
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return err
	}
	return nil
}
