// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Pacer API server.
type Config struct {

	// Server settings
	ServerHost  string `env:"SERVER_HOST"  envDefault:"0.0.0.0"`
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Two separate PostgreSQL databases: domain data and authentication.
	DataDatabaseURL string `env:"DATA_DB_CONNECT_STRING,required"`
	AuthDatabaseURL string `env:"AUTH_DB_CONNECT_STRING,required"`

	// DataMigrationPath and AuthMigrationPath are the filesystem paths to
	// each store's SQL migrations directory.
	DataMigrationPath string `env:"DATA_MIGRATION_PATH" envDefault:"./migrations/data"`
	AuthMigrationPath string `env:"AUTH_MIGRATION_PATH" envDefault:"./migrations/auth"`

	// Key-Value Cache (Redis) — Global Cache invalidation pub/sub and the
	// culler's leader-election lock.
	RedisURL string `env:"REDIS_URL,required"`

	// AdminUname/AdminPassword/AdminEmail describe the single Admin account
	// the Dual-Store Coordinator bootstraps on startup if it doesn't exist.
	AdminUname    string `env:"ADMIN_UNAME,required"`
	AdminPassword string `env:"ADMIN_PASSWORD,required"`
	AdminEmail    string `env:"ADMIN_EMAIL,required"`

	// TemplatesDir is the filesystem path to the notification templates
	// used by the mail gateway.
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./templates"`

	// StudentsPerTeacher and GoalsPerStudent are loaded from the environment;
	// no upload path reads them, so they do not bound batch sizes.
	StudentsPerTeacher int `env:"STUDENTS_PER_TEACHER" envDefault:"200"`
	GoalsPerStudent    int `env:"GOALS_PER_STUDENT"    envDefault:"500"`

	// MailGatewayAuthString authenticates outbound notification email.
	MailGatewayAuthString string `env:"SENDGRID_AUTH_STRING"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
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

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
