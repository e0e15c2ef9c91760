// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRFC3339(t *testing.T) {
	tests := []struct {
		name        string
		timestamp   string
		expectError bool
	}{
		{
			name:        "provider tag timestamp",
			timestamp:   "2019-08-28T07:36:03+00:00",
			expectError: false,
		},
		{
			name:        "valid RFC3339 with Z",
			timestamp:   "2023-06-15T10:30:45Z",
			expectError: false,
		},
		{
			name:        "valid RFC3339 with microseconds",
			timestamp:   "2023-06-15T10:30:45.123456Z",
			expectError: false,
		},
		{
			name:        "empty string",
			timestamp:   "",
			expectError: true,
		},
		{
			name:        "missing timezone",
			timestamp:   "2023-06-15T10:30:45",
			expectError: true,
		},
		{
			name:        "wrong delimiter",
			timestamp:   "2023-06-15 10:30:45Z",
			expectError: true,
		},
		{
			name:        "not a timestamp",
			timestamp:   "not-a-timestamp",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateRFC3339(tt.timestamp)

			if tt.expectError {
				assert.Error(t, err)
				assert.Zero(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, result)
			}
		})
	}
}

func TestParseTimestampPtr(t *testing.T) {
	tests := []struct {
		name        string
		timestamp   *string
		expectError bool
		expectNil   bool
	}{
		{"nil pointer returns nil", nil, false, true},
		{"empty string returns nil", stringPtr(""), false, true},
		{"valid timestamp", stringPtr("2023-06-15T10:30:45Z"), false, false},
		{"invalid timestamp", stringPtr("invalid-timestamp"), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimestampPtr(tt.timestamp)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Equal(t, 2023, result.Year())
			}
		})
	}
}

func stringPtr(s string) *string {
	return &s
}
