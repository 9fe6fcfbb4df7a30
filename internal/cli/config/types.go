// Package config loads CLI configuration from file, environment, and flags.
package config

import (
	"context"

	"github.com/medset-labs/sqlporter/internal/transpile"
)

// Config holds all CLI configuration options.
type Config struct {
	From    string `koanf:"from"`
	To      string `koanf:"to"`
	Catalog string `koanf:"catalog"`
	Verbose bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultFrom    = "bigquery"
	DefaultTo      = "postgres"
	DefaultCatalog = transpile.DefaultCatalog
)

// configKey is used to store the loaded config in a command context.
type configKey struct{}

// ContextKey returns the context key under which the loaded config is
// stored. The cli package uses it when wiring up the root command, and
// commands retrieve the value through FromContext, so neither needs to
// import the other.
func ContextKey() interface{} {
	return configKey{}
}

// FromContext retrieves the config from the command context, falling
// back to defaults when no config was loaded.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		From:    DefaultFrom,
		To:      DefaultTo,
		Catalog: DefaultCatalog,
	}
}
