package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/minsukang/channel-sales-manager/internal/api/http"
	"github.com/minsukang/channel-sales-manager/internal/salesdata"
	"github.com/minsukang/channel-sales-manager/internal/store"
	"github.com/minsukang/channel-sales-manager/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB       store.Config     `mapstructure:"postgres"`
	Logger   log.Config       `mapstructure:"logger"`
	HTTP     httpapi.Config   `mapstructure:"http"`
	Upstream salesdata.Config `mapstructure:"upstream"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Env vars use underscores and uppercase, e.g., POSTGRES_DSN, HTTP_PORT.
// Nested config keys use double underscore, e.g., POSTGRES__DSN for postgres.dsn
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	// Replace dots and dashes with underscores in env var names
	// e.g., postgres.dsn -> POSTGRES__DSN
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	// Try to read config file (optional - can work with env vars only)
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			// If config file doesn't exist, continue with env vars only
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/channel-sales-manager")
		viper.AddConfigPath("/etc/channel-sales-manager")
		// Try to read config, but don't fail if it doesn't exist
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Construct the Postgres DSN from individual env vars when it is not set,
	// matching the variables Supabase-style managed databases expose.
	if config.DB.DSN == "" {
		pgHost := os.Getenv("POSTGRES_HOST")
		pgPort := os.Getenv("POSTGRES_PORT")
		pgUser := os.Getenv("POSTGRES_USER")
		pgPassword := os.Getenv("POSTGRES_PASSWORD")
		pgDatabase := os.Getenv("POSTGRES_DATABASE")

		if pgHost != "" {
			if pgPort == "" {
				pgPort = "5432"
			}
			if pgUser != "" && pgPassword != "" && pgDatabase != "" {
				config.DB.DSN = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=require",
					pgUser, pgPassword, pgHost, pgPort, pgDatabase)
			}
		}
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (POSTGRES__DSN) and flat keys (POSTGRES_DSN)
func bindEnvVars() {
	// Postgres
	viper.BindEnv("postgres.dsn", "POSTGRES_DSN")
	viper.BindEnv("postgres.automigrate", "POSTGRES_AUTOMIGRATE")
	viper.BindEnv("postgres.max_open_connections", "POSTGRES_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("postgres.max_idle_connections", "POSTGRES_MAX_IDLE_CONNECTIONS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Upstream collector API
	viper.BindEnv("upstream.base_url", "UPSTREAM_BASE_URL")
	viper.BindEnv("upstream.timeout", "UPSTREAM_TIMEOUT")
}
