// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/constants"
)

// Config holds the configuration for the Mailchimp client
type Config struct {
	// APIKey is the account API key. Its suffix after the last hyphen is the
	// data center, e.g. "0123abcd-us6".
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the data-center derived API root
	BaseURL string `yaml:"base_url"`

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the transport retry budget for 5xx, 429 and network
	// failures. Zero means exactly one attempt per call.
	MaxRetries int `yaml:"max_retries"`

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration `yaml:"retry_delay"`

	// UserAgent is sent with every request
	UserAgent string `yaml:"user_agent"`

	// MockMode replaces the provider with the in-memory implementation
	MockMode bool `yaml:"mock"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: 0,
		RetryDelay: 1 * time.Second,
		UserAgent:  constants.ServiceName,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()
	config.ApplyEnv()
	return config
}

// ApplyEnv overrides fields with the MAILCHIMP_* variables that are set
func (c *Config) ApplyEnv() {
	if apiKey := os.Getenv(constants.EnvAPIKey); apiKey != "" {
		c.APIKey = apiKey
	}

	if baseURL := os.Getenv(constants.EnvBaseURL); baseURL != "" {
		c.BaseURL = baseURL
	}

	if timeoutStr := os.Getenv(constants.EnvTimeout); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			c.Timeout = timeout
		}
	}

	if retriesStr := os.Getenv(constants.EnvMaxRetries); retriesStr != "" {
		if retries, err := strconv.Atoi(retriesStr); err == nil && retries >= 0 {
			c.MaxRetries = retries
		}
	}

	if delayStr := os.Getenv(constants.EnvRetryDelay); delayStr != "" {
		if delay, err := time.ParseDuration(delayStr); err == nil {
			c.RetryDelay = delay
		}
	}

	if source := os.Getenv(constants.EnvSource); source == "mock" {
		c.MockMode = true
	}
}
