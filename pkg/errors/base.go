// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package errors provides the error taxonomy returned by the Mailchimp client.
//
// Every type is a value type so callers can match with errors.As against a
// zero value (var br errors.BadRequest; errors.As(err, &br)).
package errors

import "fmt"

// base holds the fields shared by every error type in this package.
type base struct {
	message string
	err     error
}

// error formats the message and, when present, the wrapped cause.
func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

// Unwrap exposes the underlying error to support errors.Is / errors.As.
func (b base) Unwrap() error {
	return b.err
}
