// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/log"
)

// Subscribe upserts an address, never asking an active subscriber to confirm again
func (o *subscriptionOrchestrator) Subscribe(ctx context.Context, listID, email string, mergeFields map[string]any, confirm bool) (err error) {
	ctx, span := o.start(ctx, "subscribe", listID)
	defer func() { end(span, err) }()

	status, err := o.status(ctx, listID, email)
	if err != nil {
		return err
	}
	if status == model.StatusSubscribed && confirm {
		slog.DebugContext(ctx, "address already subscribed, skipping confirmation",
			"list_id", listID,
			"email", log.RedactEmail(model.NormalizeEmail(email)),
		)
		confirm = false
	}

	_, err = o.gateway.AddUpdate(ctx, listID, email, mergeFields, confirm)
	return err
}

// AddUpdateMember upserts a prepared member with the same confirmation rule as Subscribe
func (o *subscriptionOrchestrator) AddUpdateMember(ctx context.Context, listID string, member model.Member) (err error) {
	ctx, span := o.start(ctx, "add_update_member", listID)
	defer func() { end(span, err) }()

	status, err := o.status(ctx, listID, member.Email())
	if err != nil {
		return err
	}
	if status == model.StatusSubscribed {
		member = member.WithConfirm(false)
	}

	_, err = o.gateway.AddUpdateMember(ctx, listID, member)
	return err
}

// Unsubscribe writes only when the address is currently subscribed
func (o *subscriptionOrchestrator) Unsubscribe(ctx context.Context, listID, email string) (err error) {
	ctx, span := o.start(ctx, "unsubscribe", listID)
	defer func() { end(span, err) }()

	status, err := o.status(ctx, listID, email)
	if err != nil {
		return err
	}
	if status != model.StatusSubscribed {
		slog.DebugContext(ctx, "address not subscribed, nothing to unsubscribe",
			"list_id", listID,
			"status", status,
		)
		return nil
	}

	_, err = o.gateway.Unsubscribe(ctx, listID, email)
	return err
}

// Archive soft-removes a member
func (o *subscriptionOrchestrator) Archive(ctx context.Context, listID, email string) (err error) {
	ctx, span := o.start(ctx, "archive", listID)
	defer func() { end(span, err) }()

	return o.gateway.Archive(ctx, listID, email)
}

// Delete permanently removes a member
func (o *subscriptionOrchestrator) Delete(ctx context.Context, listID, email string) (err error) {
	ctx, span := o.start(ctx, "delete", listID)
	defer func() { end(span, err) }()

	return o.gateway.Delete(ctx, listID, email)
}

// AddTags attaches the string entries of tags in one call, or none if there are none
func (o *subscriptionOrchestrator) AddTags(ctx context.Context, listID, email string, tags []any) (err error) {
	ctx, span := o.start(ctx, "add_tags", listID)
	defer func() { end(span, err) }()

	names := stringTags(tags)
	if len(names) == 0 {
		return nil
	}
	return o.gateway.AddTags(ctx, listID, email, names)
}

// RemoveTags detaches the string entries of tags in one call, or none if there are none
func (o *subscriptionOrchestrator) RemoveTags(ctx context.Context, listID, email string, tags []any) (err error) {
	ctx, span := o.start(ctx, "remove_tags", listID)
	defer func() { end(span, err) }()

	names := stringTags(tags)
	if len(names) == 0 {
		return nil
	}
	return o.gateway.RemoveTags(ctx, listID, email, names)
}

// RemoveAllTags fetches the current tags and detaches all of them in one call
func (o *subscriptionOrchestrator) RemoveAllTags(ctx context.Context, listID, email string) (err error) {
	ctx, span := o.start(ctx, "remove_all_tags", listID)
	defer func() { end(span, err) }()

	tags, err := o.getTags(ctx, listID, email)
	if err != nil {
		return err
	}
	names := tags.Names()
	if len(names) == 0 {
		return nil
	}
	return o.gateway.RemoveTags(ctx, listID, email, names)
}

// API normalizes the endpoint to a single leading slash and passes the call through
func (o *subscriptionOrchestrator) API(ctx context.Context, method model.Method, endpoint string, data any) (_ map[string]any, err error) {
	ctx, span := o.start(ctx, "api", "")
	defer func() { end(span, err) }()

	return o.gateway.Call(ctx, method, "/"+strings.TrimLeft(endpoint, "/"), data)
}

// stringTags keeps the string entries of tags, in order
func stringTags(tags []any) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if name, ok := tag.(string); ok {
			names = append(names, name)
		}
	}
	return names
}
