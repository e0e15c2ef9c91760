// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// InternalError represents a 5xx response from the provider, or a transport
// failure that produced no response at all (StatusCode 0).
type InternalError struct {
	base
	StatusCode int
	Body       string
}

// Error returns the error message for InternalError.
func (i InternalError) Error() string {
	return i.error()
}

// Unwrap returns the wrapped error, if any.
func (i InternalError) Unwrap() error {
	return i.err
}

// NewInternalError creates a new InternalError with the provided message and status code.
func NewInternalError(message string, statusCode int, body string, err ...error) InternalError {
	return InternalError{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
		StatusCode: statusCode,
		Body:       body,
	}
}

// DataIntegrity represents a well-formed success response that breaks the
// provider contract, e.g. a member record without a known status.
type DataIntegrity struct {
	base
}

// Error returns the error message for DataIntegrity.
func (d DataIntegrity) Error() string {
	return d.error()
}

// Unwrap returns the wrapped error, if any.
func (d DataIntegrity) Unwrap() error {
	return d.err
}

// NewDataIntegrity creates a new DataIntegrity error with the provided message.
func NewDataIntegrity(message string, err ...error) DataIntegrity {
	return DataIntegrity{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// StatusCode extracts the HTTP status carried by a provider error.
// It returns 0 for errors that never reached the provider.
func StatusCode(err error) int {
	var br BadRequest
	if errors.As(err, &br) {
		return br.StatusCode
	}
	var ie InternalError
	if errors.As(err, &ie) {
		return ie.StatusCode
	}
	return 0
}
