package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr     string        `mapstructure:"SERVER_ADDR"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFormat      string        `mapstructure:"LOG_FORMAT"`
	MaxBodyBytes   int64         `mapstructure:"MAX_BODY_BYTES"`
	MaxBatch       int           `mapstructure:"MAX_BATCH"`
	ReadTimeout    time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"WRITE_TIMEOUT"`
	ShutdownGrace  time.Duration `mapstructure:"SHUTDOWN_GRACE"`
	MetricsEnabled bool          `mapstructure:"METRICS_ENABLED"`
}

// LoadConfig reads settings from the environment on top of the defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_ADDR", "127.0.0.1:8089")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("MAX_BODY_BYTES", 64<<10)
	v.SetDefault("MAX_BATCH", 100)
	v.SetDefault("READ_TIMEOUT", 10*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SHUTDOWN_GRACE", 10*time.Second)
	v.SetDefault("METRICS_ENABLED", true)

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.MaxBatch <= 0 {
		return nil, fmt.Errorf("MAX_BATCH must be positive, got %d", config.MaxBatch)
	}
	if config.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", config.MaxBodyBytes)
	}
	return &config, nil
}
