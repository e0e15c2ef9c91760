// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/constants"
)

// BasicAuth sets HTTP basic credentials on every request
type BasicAuth struct {
	Username string
	Password string
}

// RoundTrip implements RoundTripper
func (a BasicAuth) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	req.SetBasicAuth(a.Username, a.Password)
	return next(req)
}

// RequestID tags every request with a header carrying a fresh UUID, unless
// the caller already set one
type RequestID struct {
	Header string
}

// RoundTrip implements RoundTripper
func (r RequestID) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	if req.Header.Get(r.Header) == "" {
		req.Header.Set(r.Header, uuid.NewString())
	}
	return next(req)
}

// UserAgent sets the User-Agent header
type UserAgent string

// RoundTrip implements RoundTripper
func (u UserAgent) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	if u != "" {
		req.Header.Set(constants.UserAgentHeader, string(u))
	}
	return next(req)
}
