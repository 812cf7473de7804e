package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration, loaded from an optional
// app.env file and overridable through the environment.
type Config struct {
	ServerAddress    string        `mapstructure:"SERVER_ADDRESS"`
	StorageDriver    string        `mapstructure:"STORAGE_DRIVER"` // "memory" or "postgres"
	PostgresConn     string        `mapstructure:"POSTGRES_CONN"`
	MigrationURL     string        `mapstructure:"MIGRATION_URL"`
	NATSURL          string        `mapstructure:"NATS_URL"` // empty disables the JetStream sink
	SweepInterval    time.Duration `mapstructure:"SWEEP_INTERVAL"`
	DispatchInterval time.Duration `mapstructure:"DISPATCH_INTERVAL"`
	DispatchAttempts int           `mapstructure:"DISPATCH_ATTEMPTS"`
	UploadDir        string        `mapstructure:"UPLOAD_DIR"`
	BaseURL          string        `mapstructure:"BASE_URL"`
}

// LoadConfig reads configuration from path/app.env, falling back to defaults
// and environment variables when the file is absent.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("POSTGRES_CONN", "")
	viper.SetDefault("MIGRATION_URL", "file://migrations")
	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("SWEEP_INTERVAL", time.Minute)
	viper.SetDefault("DISPATCH_INTERVAL", 2*time.Second)
	viper.SetDefault("DISPATCH_ATTEMPTS", 5)
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("BASE_URL", "http://localhost:8080")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
