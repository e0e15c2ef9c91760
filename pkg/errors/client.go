// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// InvalidInput represents a locally detected input error. It never reaches the network.
type InvalidInput struct {
	base
}

// Error returns the error message for InvalidInput.
func (v InvalidInput) Error() string {
	return v.error()
}

// NewInvalidInput creates a new InvalidInput error with the provided message.
func NewInvalidInput(message string, err ...error) InvalidInput {
	return InvalidInput{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// BadRequest represents a 4xx response from the provider.
type BadRequest struct {
	base
	StatusCode int
	Body       string
}

// Error returns the error message for BadRequest.
func (b BadRequest) Error() string {
	return b.error()
}

// NotFound reports whether the provider answered 404.
func (b BadRequest) NotFound() bool {
	return b.StatusCode == http.StatusNotFound
}

// Response decodes the raw response body. An unparseable body yields an empty map.
func (b BadRequest) Response() map[string]any {
	out := map[string]any{}
	if b.Body == "" {
		return out
	}
	if err := json.Unmarshal([]byte(b.Body), &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// NewBadRequest creates a new BadRequest error carrying the status code and raw body.
func NewBadRequest(message string, statusCode int, body string, err ...error) BadRequest {
	return BadRequest{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
		StatusCode: statusCode,
		Body:       body,
	}
}

// BadEmailAddress is a BadRequest raised when the provider refuses further
// signups for an address. Callers should stop retrying that address.
type BadEmailAddress struct {
	BadRequest
}

// Error returns the error message for BadEmailAddress.
func (b BadEmailAddress) Error() string {
	return b.error()
}

// As lets errors.As match a BadEmailAddress against a *BadRequest target.
func (b BadEmailAddress) As(target any) bool {
	if t, ok := target.(*BadRequest); ok {
		*t = b.BadRequest
		return true
	}
	return false
}

// NewBadEmailAddress creates a new BadEmailAddress error.
func NewBadEmailAddress(message string, statusCode int, body string, err ...error) BadEmailAddress {
	return BadEmailAddress{
		BadRequest: NewBadRequest(message, statusCode, body, err...),
	}
}
