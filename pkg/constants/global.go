// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the Mailchimp client.
package constants

// Service constants
const (
	// ServiceName is the name reported in telemetry
	ServiceName = "lfx-v2-mailchimp-client"

	// InstrumentationName scopes tracers and meters created by this module
	InstrumentationName = "github.com/linuxfoundation/lfx-v2-mailchimp-client"
)

// Provider constants
const (
	// BaseURLTemplate is the API root; <dc> is replaced by the API key's data center
	BaseURLTemplate = "https://<dc>.api.mailchimp.com/3.0"

	// DataCenterPlaceholder is the token substituted in BaseURLTemplate
	DataCenterPlaceholder = "<dc>"

	// BasicAuthUsername is sent with the API key as the basic-auth password.
	// The provider ignores its value.
	BasicAuthUsername = "mcuser"

	// InvalidResourceTitle is the error title of payload validation failures
	InvalidResourceTitle = "Invalid Resource"

	// SignupThrottleDetail appears in the error detail when an address is refused
	// because it signed up to too many lists recently
	SignupThrottleDetail = "has signed up to a lot of lists very recently"
)

// HTTP header constants
const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-Id"

	// UserAgentHeader is the HTTP header name for the user agent
	UserAgentHeader = "User-Agent"
)

// Environment variables
const (
	// EnvAPIKey is the environment variable for the Mailchimp API key
	EnvAPIKey = "MAILCHIMP_API_KEY"
	// EnvBaseURL overrides the data-center derived base URL
	EnvBaseURL = "MAILCHIMP_BASE_URL"
	// EnvTimeout is the HTTP client timeout, as a Go duration
	EnvTimeout = "MAILCHIMP_TIMEOUT"
	// EnvMaxRetries is the transport retry budget for 5xx and network failures
	EnvMaxRetries = "MAILCHIMP_MAX_RETRIES"
	// EnvRetryDelay is the base delay between transport retries
	EnvRetryDelay = "MAILCHIMP_RETRY_DELAY"
	// EnvSource selects "mock" to use the in-memory provider
	EnvSource = "MAILCHIMP_SOURCE"
)
