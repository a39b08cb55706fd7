// Package config provides a reusable loader for this module's configuration
// files and environment variables.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"globalstate/pkg/utils"
)

// Config is the unified configuration for a TrackingCopy-backed process. It
// mirrors the structure of the YAML files under cmd/config.
type Config struct {
	Cache struct {
		MaxSize int    `mapstructure:"max_size" json:"max_size"`
		Meter   string `mapstructure:"meter" json:"meter"` // "heap" or "count"
	} `mapstructure:"cache" json:"cache"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment-specific
// overrides. The resulting configuration is stored in AppConfig and
// returned.
//
// If a .env file is present in the working directory its variables are
// loaded into the process environment before viper reads them; a missing
// .env file is not an error. If env is non-empty, an additional
// "<env>.yaml" file is merged on top of the default configuration.
func Load(env string) (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the GS_ENV environment variable to
// select the overlay.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("GS_ENV", ""))
}
