// Package datastore provides logging infrastructure for database operations
package datastore

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tvalderas/battfit-go/internal/logging"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQueryThreshold defines the duration after which a query is
// considered slow. Seed batches stay well under this in normal operation.
const DefaultSlowQueryThreshold = 1 * time.Second

// slogWriter adapts the service slog logger to GORM's logger.Writer.
type slogWriter struct {
	logger *slog.Logger
}

func (w *slogWriter) Printf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\r\n")
	w.logger.Info("gorm", "detail", msg)
}

// createGormLogger configures a GORM logger that routes through the
// datastore's structured logger, warning on slow queries and errors only.
func createGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(
		&slogWriter{logger: logging.ForService("datastore")},
		gormlogger.Config{
			SlowThreshold:             DefaultSlowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}
