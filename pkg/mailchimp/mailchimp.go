// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mailchimp is the public entry point of the client. New wires the
// HTTP gateway and the subscription orchestrator behind a single Client.
package mailchimp

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/port"
	gateway "github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/infrastructure/mailchimp"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/service"
)

// Domain types re-exported for callers outside the module.
type (
	Member         = model.Member
	MemberRecord   = model.MemberRecord
	Status         = model.Status
	Method         = model.Method
	Tag            = model.Tag
	TagCollection  = model.TagCollection
	List           = model.List
	ListCollection = model.ListCollection
	ListsQuery     = model.ListsQuery
	Location       = model.Location
	Config         = gateway.Config
	Gateway        = port.Gateway
)

// Member statuses.
const (
	StatusNotFound      = model.StatusNotFound
	StatusSubscribed    = model.StatusSubscribed
	StatusUnsubscribed  = model.StatusUnsubscribed
	StatusCleaned       = model.StatusCleaned
	StatusPending       = model.StatusPending
	StatusTransactional = model.StatusTransactional
	StatusArchived      = model.StatusArchived
)

// HTTP methods accepted by Client.API.
const (
	MethodGet    = model.MethodGet
	MethodPut    = model.MethodPut
	MethodPost   = model.MethodPost
	MethodDelete = model.MethodDelete
	MethodPatch  = model.MethodPatch
)

var (
	// NewMember builds a member payload for an address.
	NewMember = model.NewMember
	// ParseMethod converts a verb such as "get" into a Method.
	ParseMethod = model.ParseMethod
	// SubscriberHash returns the member identifier of an address.
	SubscriberHash = model.SubscriberHash
	// SupportedLanguages lists the accepted member language codes.
	SupportedLanguages = model.SupportedLanguages
	// DefaultConfig returns the gateway defaults.
	DefaultConfig = gateway.DefaultConfig
	// NewConfigFromEnv reads the gateway configuration from MAILCHIMP_* variables.
	NewConfigFromEnv = gateway.NewConfigFromEnv
)

// Client exposes every subscription operation plus the raw API passthrough.
type Client struct {
	service.Subscription
	gateway port.Gateway
}

type options struct {
	config     gateway.Config
	gateway    port.Gateway
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures New.
type Option func(*options)

// WithConfig replaces the gateway configuration. The API key passed to New
// always wins over cfg.APIKey.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithBaseURL sends requests to url instead of the data center derived from the key.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.config.BaseURL = url
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.config.Timeout = timeout
	}
}

// WithHTTPClient sends requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithGateway uses gw instead of the HTTP gateway. The API key is not
// checked in that case.
func WithGateway(gw Gateway) Option {
	return func(o *options) {
		o.gateway = gw
	}
}

// WithTracer overrides the tracer used for operation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// New creates a Client for apiKey. A key without a data center suffix fails
// with an InvalidInput error before any request is made.
func New(apiKey string, opts ...Option) (*Client, error) {
	o := options{config: gateway.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	o.config.APIKey = apiKey

	gw := o.gateway
	if gw == nil {
		var gatewayOpts []gateway.Option
		if o.httpClient != nil {
			gatewayOpts = append(gatewayOpts, gateway.WithHTTPClient(o.httpClient))
		}
		httpGateway, err := gateway.NewClient(o.config, gatewayOpts...)
		if err != nil {
			return nil, err
		}
		gw = httpGateway
	}

	serviceOpts := []service.SubscriptionOrchestratorOption{service.WithGateway(gw)}
	if o.tracer != nil {
		serviceOpts = append(serviceOpts, service.WithTracer(o.tracer))
	}

	return &Client{
		Subscription: service.NewSubscriptionOrchestrator(serviceOpts...),
		gateway:      gw,
	}, nil
}

// Gateway returns the underlying gateway for the typed endpoint helpers.
func (c *Client) Gateway() Gateway {
	return c.gateway
}

// ResponseCode returns the status of the most recent provider response.
func (c *Client) ResponseCode() int {
	return c.gateway.ResponseCode()
}

// ResponseCodeNotFound reports whether the most recent response was a 404.
func (c *Client) ResponseCodeNotFound() bool {
	return c.gateway.ResponseCodeNotFound()
}
