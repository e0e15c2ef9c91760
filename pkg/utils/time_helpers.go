// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package utils provides telemetry bootstrap and small helpers for the Mailchimp client.
package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/constants"
)

// ValidateRFC3339 parses an RFC3339 timestamp as returned by the provider.
func ValidateRFC3339(timestamp string) (time.Time, error) {
	if timestamp == "" {
		return time.Time{}, errors.New(constants.ErrEmptyTimestamp)
	}

	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", constants.ErrInvalidTimestampFormat, err)
	}

	return t, nil
}

// ParseTimestampPtr parses an optional timestamp.
// Returns nil if the input is nil or empty.
func ParseTimestampPtr(timestamp *string) (*time.Time, error) {
	if timestamp == nil || *timestamp == "" {
		return nil, nil
	}

	t, err := ValidateRFC3339(*timestamp)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
