// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import "time"

// Config holds the transport settings of a Client
type Config struct {
	// Timeout bounds a single attempt, including reading the body
	Timeout time.Duration

	// MaxRetries is the number of extra attempts after a retryable failure.
	// Zero means exactly one attempt.
	MaxRetries int

	// RetryDelay is the delay before the first retry
	RetryDelay time.Duration

	// RetryBackoff doubles the delay on every further retry
	RetryBackoff bool

	// MaxDelay caps the backoff delay
	MaxDelay time.Duration
}

// DefaultConfig returns a general purpose configuration with two retries
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRetries:   2,
		RetryDelay:   1 * time.Second,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
	}
}
