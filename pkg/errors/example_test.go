// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBadEmailAddressIsBadRequest shows that a throttled address can be
// handled by callers that only know about BadRequest.
func TestBadEmailAddressIsBadRequest(t *testing.T) {
	var err error = NewBadEmailAddress("signups refused", http.StatusBadRequest, `{"status":400}`)

	var badRequest BadRequest
	require.True(t, errors.As(err, &badRequest), "BadEmailAddress should match BadRequest")
	assert.Equal(t, http.StatusBadRequest, badRequest.StatusCode)
	assert.Equal(t, `{"status":400}`, badRequest.Body)

	var badEmail BadEmailAddress
	assert.True(t, errors.As(err, &badEmail))

	// The reverse does not hold
	var plain error = NewBadRequest("bad request", http.StatusBadRequest, "")
	assert.False(t, errors.As(plain, &badEmail))
}

func TestBadRequestResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected map[string]any
	}{
		{
			name:     "json body",
			body:     `{"status":404,"title":"Resource Not Found"}`,
			expected: map[string]any{"status": float64(404), "title": "Resource Not Found"},
		},
		{
			name:     "empty body",
			body:     "",
			expected: map[string]any{},
		},
		{
			name:     "unparseable body",
			body:     "<html>gateway</html>",
			expected: map[string]any{},
		},
		{
			name:     "json null",
			body:     "null",
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBadRequest("bad request", http.StatusNotFound, tt.body)
			assert.Equal(t, tt.expected, err.Response())
		})
	}
}

func TestBadRequestNotFound(t *testing.T) {
	assert.True(t, NewBadRequest("missing", http.StatusNotFound, "").NotFound())
	assert.False(t, NewBadRequest("invalid", http.StatusBadRequest, "").NotFound())
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"bad request", NewBadRequest("x", 404, ""), 404},
		{"bad email address", NewBadEmailAddress("x", 400, ""), 400},
		{"internal error", NewInternalError("x", 502, ""), 502},
		{"transport failure", NewInternalError("x", 0, "", errors.New("dial tcp")), 0},
		{"invalid input", NewInvalidInput("x"), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}
