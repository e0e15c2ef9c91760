// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.MaxRetries, "one attempt per call by default")
	assert.Equal(t, "lfx-v2-mailchimp-client", cfg.UserAgent)
	assert.False(t, cfg.MockMode)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("MAILCHIMP_API_KEY", "abc123-us6")
	t.Setenv("MAILCHIMP_BASE_URL", "http://localhost:8080/3.0")
	t.Setenv("MAILCHIMP_TIMEOUT", "5s")
	t.Setenv("MAILCHIMP_MAX_RETRIES", "2")
	t.Setenv("MAILCHIMP_RETRY_DELAY", "250ms")
	t.Setenv("MAILCHIMP_SOURCE", "mock")

	cfg := NewConfigFromEnv()

	assert.Equal(t, "abc123-us6", cfg.APIKey)
	assert.Equal(t, "http://localhost:8080/3.0", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.True(t, cfg.MockMode)
}

func TestNewConfigFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("MAILCHIMP_API_KEY", "")
	t.Setenv("MAILCHIMP_BASE_URL", "")
	t.Setenv("MAILCHIMP_TIMEOUT", "soon")
	t.Setenv("MAILCHIMP_MAX_RETRIES", "-1")
	t.Setenv("MAILCHIMP_RETRY_DELAY", "later")
	t.Setenv("MAILCHIMP_SOURCE", "live")

	assert.Equal(t, DefaultConfig(), NewConfigFromEnv())
}
