// env.go - Environment variable configuration and validation for battfit
package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envBinding holds metadata for environment variable bindings (internal use)
type envBinding struct {
	ConfigKey string             // Viper config key
	EnvVar    string             // Environment variable name
	Validate  func(string) error // Optional validation function
}

// getEnvBindings returns all environment variable bindings with validation
func getEnvBindings() []envBinding {
	return []envBinding{
		{"debug", "BATTFIT_DEBUG", validateEnvBool},

		{"database.type", "BATTFIT_DB_TYPE", validateEnvDatabaseType},
		{"database.host", "BATTFIT_DB_HOST", nil},
		{"database.port", "BATTFIT_DB_PORT", validateEnvPort},
		{"database.name", "BATTFIT_DB_NAME", nil},
		{"database.username", "BATTFIT_DB_USER", nil},
		{"database.password", "BATTFIT_DB_PASSWORD", nil},
		{"database.passwordfile", "BATTFIT_DB_PASSWORD_FILE", validateEnvPath},
		{"database.sqlite.path", "BATTFIT_SQLITE_PATH", nil},

		{"probe.interval", "BATTFIT_PROBE_INTERVAL", validateEnvDuration},
		{"probe.maxattempts", "BATTFIT_PROBE_MAX_ATTEMPTS", validateEnvInt},
	}
}

// bindEnvVars sets up environment variable bindings with validation (internal)
func bindEnvVars() error {
	bindings := getEnvBindings()
	var warnings []string

	for _, binding := range bindings {
		if err := viper.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to bind %s: %v", binding.EnvVar, err))
			continue
		}

		if binding.Validate != nil {
			if envValue := os.Getenv(binding.EnvVar); envValue != "" {
				if err := binding.Validate(envValue); err != nil {
					warnings = append(warnings, fmt.Sprintf("Invalid %s value '%s': %v", binding.EnvVar, envValue, err))
				}
			}
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("environment variable issues:\n  - %s", strings.Join(warnings, "\n  - "))
	}

	return nil
}

// Environment variable validation functions

// validateEnvBool validates boolean environment variables
func validateEnvBool(value string) error {
	_, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean value '%s': must be true/false, 1/0, t/f, TRUE/FALSE, T/F", value)
	}
	return nil
}

func validateEnvDatabaseType(value string) error {
	switch value {
	case DatabaseSQLite, DatabaseMySQL:
		return nil
	default:
		return fmt.Errorf("database type must be %q or %q, got '%s'", DatabaseSQLite, DatabaseMySQL, value)
	}
}

func validateEnvPort(value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

func validateEnvDuration(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration (e.g. '1s', '500ms'): %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %s", d)
	}
	return nil
}

func validateEnvInt(value string) error {
	if _, err := strconv.Atoi(value); err != nil {
		return fmt.Errorf("invalid integer: %w", err)
	}
	return nil
}

func validateEnvPath(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("path must not be empty")
	}
	return nil
}
