// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, cfg.Retry.Timeouts)
	assert.True(t, cfg.Retry.UseLastTimeout)
	assert.Equal(t, 3*time.Second, cfg.Call.Timeout)
	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	t.Run("built-in defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("APIX_RETRY_MAXRETRIES", "5")
		t.Setenv("APIX_RETRY_TIMEOUTS", "100ms,200ms,1s")
		t.Setenv("APIX_RETRY_USELASTTIMEOUT", "false")
		t.Setenv("APIX_CALL_TIMEOUT", "1s")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Retry.MaxRetries)
		assert.Equal(t, []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			time.Second,
		}, cfg.Retry.Timeouts)
		assert.False(t, cfg.Retry.UseLastTimeout)
		assert.Equal(t, time.Second, cfg.Call.Timeout)
	})
	t.Run("partial override keeps defaults", func(t *testing.T) {
		t.Setenv("APIX_RETRY_MAXRETRIES", "7")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Retry.MaxRetries)
		assert.Equal(t, []time.Duration{500 * time.Millisecond}, cfg.Retry.Timeouts)
		assert.Equal(t, 3*time.Second, cfg.Call.Timeout)
	})
	t.Run("single timeout entry", func(t *testing.T) {
		t.Setenv("APIX_RETRY_TIMEOUTS", "250ms")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []time.Duration{250 * time.Millisecond}, cfg.Retry.Timeouts)
	})
	t.Run("invalid retry budget", func(t *testing.T) {
		t.Setenv("APIX_RETRY_MAXRETRIES", "0")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid configuration")
	})
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("APIX_CALL_TIMEOUT", "sometime later")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestRetryOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.RetryOptions()
	assert.Equal(t, cfg.Retry.MaxRetries, opts.MaxRetries)
	assert.Equal(t, cfg.Retry.Timeouts, opts.Timeouts)
	assert.Equal(t, cfg.Retry.UseLastTimeout, opts.UseLastTimeout)

	// The options own their delay slice.
	opts.Timeouts[0] = time.Hour
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.Timeouts[0])
}
