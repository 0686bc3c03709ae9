// Copyright (c) 2026 Pulseboard. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, token service) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Pulseboard API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"        envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Session token signing. The secret is required: the process must not
	// start without it.
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Relational Database (PostgreSQL), addressed by discrete settings.
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required,notEmpty"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required,notEmpty"`

	// DBCACertPath points at the CA certificate used to verify the encrypted
	// database connection. Required in production mode.
	DBCACertPath string `env:"DB_CA_CERT_PATH"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// SeedAdminUser enables one-time seeding of the default administrative
	// account on an empty users table. Off unless the operator opts in.
	SeedAdminUser bool `env:"SEED_ADMIN_USER" envDefault:"false"`

	// StaticDir is the frontend bundle served in production mode.
	StaticDir string `env:"STATIC_DIR" envDefault:"./web/dist"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	// Encrypted storage connections are mandatory in production, so the CA
	// certificate must be present before we attempt to connect.
	if cfg.IsProduction() && cfg.DBCACertPath == "" {
		return nil, fmt.Errorf("config: DB_CA_CERT_PATH is required in production")
	}

	return cfg, nil
}

// DatabaseURL assembles a pgx-compatible connection URL from the discrete
// database settings. TLS verification is enforced in production mode.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}

	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}

	query := url.Values{}
	if c.IsProduction() {
		query.Set("sslmode", "verify-full")
		query.Set("sslrootcert", c.DBCACertPath)
	} else {
		query.Set("sslmode", "disable")
	}
	u.RawQuery = query.Encode()

	return u.String()
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
