package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	// json (flat-file collections under DataDir) or postgres.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"json"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	DatabaseURL    string `env:"DATABASE_URL"`

	// StoreStrictRead surfaces corrupt collection files as errors instead of
	// silently loading them as empty.
	StoreStrictRead bool `env:"STORE_STRICT_READ" envDefault:"false"`

	AccountNumberFloor int64 `env:"ACCOUNT_NUMBER_FLOOR" envDefault:"1000000"`

	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.StorageBackend != "json" && cfg.StorageBackend != "postgres" {
		return nil, fmt.Errorf("config.Load: unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config.Load: DATABASE_URL is required for the postgres backend")
	}
	return &cfg, nil
}
