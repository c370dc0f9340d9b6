// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config carries vaultctl's optional qvault.toml settings: the
// default algorithm-id that keygen uses when --algorithm is omitted, and
// an arena mode that is loaded but read by no command. The core library
// (package vault and below) never reads this
// package; it exists only for the CLI driver.
package config

import "context"

// Config is the shape viper/mapstructure populate from qvault.toml.
type Config struct {
	Algorithm string `mapstructure:"algorithm"`
	Arena     string `mapstructure:"arena"`
}

type contextKey struct{}

// WithConfig returns a context carrying cfg, retrievable with FromContext.
func WithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the Config stored by WithConfig, or the zero value
// (every field empty) if none was attached.
func FromContext(ctx context.Context) Config {
	cfg, _ := ctx.Value(contextKey{}).(Config)
	return cfg
}
