// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "battfit")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "battfit.log")

	viper.SetDefault("database.type", DatabaseMySQL)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "3306")
	viper.SetDefault("database.name", "battfit")
	viper.SetDefault("database.username", "battfit")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.passwordfile", "")
	viper.SetDefault("database.sqlite.path", "battfit.db")

	viper.SetDefault("probe.interval", 1*time.Second)
	viper.SetDefault("probe.maxattempts", 30)
}
