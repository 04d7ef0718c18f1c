// Package conf loads and validates the battfit configuration from defaults,
// an optional YAML config file, environment variables, and command flags.
package conf

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/tvalderas/battfit-go/internal/errors"
	"github.com/tvalderas/battfit-go/internal/secrets"
)

// Database type identifiers accepted in database.type.
const (
	DatabaseSQLite = "sqlite"
	DatabaseMySQL  = "mysql"
)

// Settings holds the full application configuration.
type Settings struct {
	Debug bool // true to enable debug level logging

	Main struct {
		Name string // instance name reported in logs
		Log  struct {
			Enabled bool   // true to write a rotating seed-run log file
			Path    string // path to the log file
		}
	}

	Database DatabaseSettings
	Probe    ProbeSettings
}

// DatabaseSettings describes the storage service connection.
type DatabaseSettings struct {
	Type string // "sqlite" or "mysql"

	Host         string
	Port         string
	Name         string
	Username     string
	Password     string // literal, ${VAR} reference, resolved then cleared by Load
	PasswordFile string `mapstructure:"passwordfile"` // Docker/K8s secret file, preferred over Password

	SQLite struct {
		Path string // database file path, ":memory:" allowed
	}

	// Credential carries the resolved password in locked memory. Populated
	// by Load; not read from config.
	Credential secrets.Credential `mapstructure:"-"`
}

// ProbeSettings bounds the readiness polling loop.
type ProbeSettings struct {
	Interval    time.Duration // delay between connection attempts
	MaxAttempts int           // 0 or negative means retry without bound
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into a
// Settings struct. The database password is resolved through the secrets
// package and sealed into Settings.Database.Credential; the plaintext fields
// are cleared before Load returns.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	if err := sealCredential(settings); err != nil {
		return nil, err
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// GetSettings returns the current settings instance, or nil before Load.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// initViper initializes viper with defaults, environment bindings and the
// optional configuration file.
func initViper() error {
	viper.SetConfigName("battfit")
	viper.SetConfigType("yaml")

	for _, path := range configPaths() {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := bindEnvVars(); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file is fine; env vars and flags carry the config
			// in container deployments.
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// configPaths returns the directories searched for battfit.yaml.
func configPaths() []string {
	return []string{".", "/etc/battfit"}
}

// ValidateSettings checks invariants that defaults and env validation cannot
// express on their own.
func ValidateSettings(settings *Settings) error {
	switch settings.Database.Type {
	case DatabaseSQLite:
		if settings.Database.SQLite.Path == "" {
			return errors.Newf("database.sqlite.path is required when database.type is sqlite").
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
	case DatabaseMySQL:
		if settings.Database.Host == "" || settings.Database.Name == "" || settings.Database.Username == "" {
			return errors.Newf("database host, name and username are required when database.type is mysql").
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
	default:
		return errors.Newf("unsupported database.type %q (expected %q or %q)",
			settings.Database.Type, DatabaseSQLite, DatabaseMySQL).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.Probe.Interval <= 0 {
		return errors.Newf("probe.interval must be positive, got %s", settings.Probe.Interval).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return nil
}

// sealCredential resolves the database password and moves it into locked
// memory, clearing the plaintext struct fields.
func sealCredential(settings *Settings) error {
	cred, err := secrets.ResolveCredential(settings.Database.PasswordFile, settings.Database.Password)
	if err != nil {
		return errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("field", "database.password").
			Build()
	}
	settings.Database.Credential = cred
	settings.Database.Password = ""
	settings.Database.PasswordFile = ""
	return nil
}
