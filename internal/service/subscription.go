// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service implements the subscription use cases on top of the
// provider gateway.
package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/constants"
)

// SubscriptionReader defines the read use cases
type SubscriptionReader interface {
	// ListExists succeeds when the list exists. A missing list fails with a
	// BadRequest carrying status 404.
	ListExists(ctx context.Context, listID string) error
	// GetLists returns the list collection
	GetLists(ctx context.Context, query model.ListsQuery) (*model.ListCollection, error)
	// Status returns the subscription status of an address, or
	// model.StatusNotFound when the list holds no record for it
	Status(ctx context.Context, listID, email string) (model.Status, error)
	// Check reports whether the address is subscribed. Pending is not subscribed.
	Check(ctx context.Context, listID, email string) (bool, error)
	// GetTags returns the tags of a member
	GetTags(ctx context.Context, listID, email string) (*model.TagCollection, error)
}

// SubscriptionWriter defines the mutating use cases
type SubscriptionWriter interface {
	// Subscribe upserts an address. confirm requests double opt-in and is
	// ignored for addresses that are already subscribed.
	Subscribe(ctx context.Context, listID, email string, mergeFields map[string]any, confirm bool) error
	// AddUpdateMember upserts a prepared member, dropping its confirmation
	// request when the address is already subscribed
	AddUpdateMember(ctx context.Context, listID string, member model.Member) error
	// Unsubscribe unsubscribes a subscribed address and does nothing otherwise
	Unsubscribe(ctx context.Context, listID, email string) error
	// Archive soft-removes a member without checking its state
	Archive(ctx context.Context, listID, email string) error
	// Delete permanently removes a member without checking its state. The
	// provider only accepts it for archived members.
	Delete(ctx context.Context, listID, email string) error
	// AddTags attaches the string entries of tags; other entries are dropped
	AddTags(ctx context.Context, listID, email string, tags []any) error
	// RemoveTags detaches the string entries of tags; other entries are dropped
	RemoveTags(ctx context.Context, listID, email string, tags []any) error
	// RemoveAllTags detaches every tag the member currently has
	RemoveAllTags(ctx context.Context, listID, email string) error
}

// Subscription combines the reader and writer use cases with a raw API passthrough
type Subscription interface {
	SubscriptionReader
	SubscriptionWriter

	// API sends one request to an arbitrary endpoint, bypassing every rule above
	API(ctx context.Context, method model.Method, endpoint string, data any) (map[string]any, error)
}

// SubscriptionOrchestratorOption defines a function type for setting options on the orchestrator
type SubscriptionOrchestratorOption func(*subscriptionOrchestrator)

// WithGateway sets the provider gateway
func WithGateway(gateway port.Gateway) SubscriptionOrchestratorOption {
	return func(o *subscriptionOrchestrator) {
		o.gateway = gateway
	}
}

// WithTracer overrides the tracer used for use case spans
func WithTracer(tracer trace.Tracer) SubscriptionOrchestratorOption {
	return func(o *subscriptionOrchestrator) {
		o.tracer = tracer
	}
}

// subscriptionOrchestrator runs every use case as a short, fixed sequence of gateway calls
type subscriptionOrchestrator struct {
	gateway port.Gateway
	tracer  trace.Tracer
}

// NewSubscriptionOrchestrator creates a new orchestrator using the option pattern
func NewSubscriptionOrchestrator(opts ...SubscriptionOrchestratorOption) Subscription {
	o := &subscriptionOrchestrator{}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(constants.InstrumentationName)
	}

	return o
}

func (o *subscriptionOrchestrator) requireGateway() {
	if o.gateway == nil {
		panic("gateway dependency is required but was not provided")
	}
}

// start opens a span for a use case
func (o *subscriptionOrchestrator) start(ctx context.Context, name string, listID string) (context.Context, trace.Span) {
	o.requireGateway()
	return o.tracer.Start(ctx, "mailchimp."+name, trace.WithAttributes(listIDAttr(listID)))
}

// end records err on the span and closes it
func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
