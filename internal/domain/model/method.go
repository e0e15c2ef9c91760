// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/errors"
)

// Method is the closed set of HTTP verbs the gateway accepts.
// The zero value is not a valid method.
type Method int

// Supported methods.
const (
	MethodGet Method = iota + 1
	MethodPut
	MethodPost
	MethodDelete
	MethodPatch
)

// ParseMethod converts a verb such as "get" or " PUT " into a Method.
// Anything outside the supported set fails with InvalidInput.
func ParseMethod(verb string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(verb)) {
	case "get":
		return MethodGet, nil
	case "put":
		return MethodPut, nil
	case "post":
		return MethodPost, nil
	case "delete":
		return MethodDelete, nil
	case "patch":
		return MethodPatch, nil
	}
	return 0, errors.NewInvalidInput(fmt.Sprintf("invalid API call method: %s", verb))
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	return m >= MethodGet && m <= MethodPatch
}

// HTTP returns the wire verb, or an empty string for an invalid method.
func (m Method) HTTP() string {
	switch m {
	case MethodGet:
		return http.MethodGet
	case MethodPut:
		return http.MethodPut
	case MethodPost:
		return http.MethodPost
	case MethodDelete:
		return http.MethodDelete
	case MethodPatch:
		return http.MethodPatch
	}
	return ""
}

// QueryPayload reports whether the payload travels as query parameters
// rather than as a request body.
func (m Method) QueryPayload() bool {
	return m == MethodGet || m == MethodDelete
}

// String implements fmt.Stringer.
func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return strings.ToLower(m.HTTP())
}
