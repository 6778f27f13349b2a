// Package config loads the service's runtime configuration.
package config

import (
	"fmt"

	"github.com/chris/recording-settlements/pkg/earnings"
	"github.com/spf13/viper"
)

// Config holds everything tunable at startup.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Earnings EarningsConfig `mapstructure:"earnings"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type EarningsConfig struct {
	RateCentsPerHour int64 `mapstructure:"rate_cents_per_hour"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the environment with sane defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("earnings.rate_cents_per_hour", earnings.DefaultRateCentsPerHour)
	v.SetDefault("log.level", "info")

	v.BindEnv("server.port", "HTTP_PORT")
	v.BindEnv("earnings.rate_cents_per_hour", "EARNINGS_RATE_CENTS_PER_HOUR")
	v.BindEnv("log.level", "LOG_LEVEL")

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return &conf, nil
}
