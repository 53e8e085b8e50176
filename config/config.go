// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the process-wide defaults consumed by the request
// facade: the retry policy and the per-attempt call timeout.
//
// Configuration is resolved once, at startup, from built-in defaults
// overridden by APIX_* environment variables, and the resulting Config is
// passed down explicitly. Nothing in this module reads configuration state
// ad hoc; inject the Config instead.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/stanzware/apix/retry"
)

// envPrefix selects which environment variables participate in Load.
// APIX_RETRY_MAXRETRIES=5 overrides the retry.maxretries key, and so on.
const envPrefix = "APIX_"

// RetryConfig holds the default retry policy for the facade.
type RetryConfig struct {
	// MaxRetries bounds the total attempts per call. One disables
	// retrying.
	MaxRetries int `koanf:"maxretries" validate:"min=1"`

	// Timeouts is the ordered inter-attempt delay sequence. From the
	// environment it is a comma-separated list of durations, e.g.
	// "100ms,200ms,1s".
	Timeouts []time.Duration `koanf:"timeouts" validate:"min=1,dive,min=0"`

	// UseLastTimeout reuses the final Timeouts entry once the attempt
	// count outruns a multi-element sequence. A single-entry Timeouts
	// is a scalar delay and repeats regardless.
	UseLastTimeout bool `koanf:"uselasttimeout"`
}

// CallConfig holds per-attempt call settings.
type CallConfig struct {
	// Timeout is the deadline raced against each individual attempt.
	// Zero falls back to race.DefaultTimeout.
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

// Config is the injected configuration object for the request facade.
type Config struct {
	Retry RetryConfig `koanf:"retry" validate:"required"`
	Call  CallConfig  `koanf:"call"`
}

// RetryOptions converts the configured retry policy into retry.Options.
// The returned value owns its own delay slice, so callers may attach hooks
// or tweak fields without affecting the Config.
func (c *Config) RetryOptions() retry.Options {
	timeouts := make([]time.Duration, len(c.Retry.Timeouts))
	copy(timeouts, c.Retry.Timeouts)
	return retry.Options{
		MaxRetries:     c.Retry.MaxRetries,
		Timeouts:       timeouts,
		UseLastTimeout: c.Retry.UseLastTimeout,
	}
}

// Default returns the built-in configuration: three attempts, a constant
// half-second delay between them, and a three-second per-attempt timeout.
func Default() *Config {
	return &Config{
		Retry: RetryConfig{
			MaxRetries:     3,
			Timeouts:       []time.Duration{500 * time.Millisecond},
			UseLastTimeout: true,
		},
		Call: CallConfig{
			Timeout: 3 * time.Second,
		},
	}
}

// Load resolves the configuration from built-in defaults overridden by
// APIX_* environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: failed to load defaults: %w", err)
	}

	if err := k.Load(envprovider.Provider(envPrefix, ".", func(s string) string {
		// APIX_RETRY_MAXRETRIES -> retry.maxretries
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks cfg against the struct-level validation rules.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

func defaults() map[string]any {
	// Durations are strings so defaults and environment overrides go
	// through the same decode hooks.
	return map[string]any{
		"retry.maxretries":     3,
		"retry.timeouts":       "500ms",
		"retry.uselasttimeout": true,
		"call.timeout":         "3s",
	}
}
