// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/log"
)

// ListExists verifies the list exists, translating a 404 into a "does not exist" BadRequest
func (o *subscriptionOrchestrator) ListExists(ctx context.Context, listID string) (err error) {
	ctx, span := o.start(ctx, "list_exists", listID)
	defer func() { end(span, err) }()

	return o.listExists(ctx, listID)
}

func (o *subscriptionOrchestrator) listExists(ctx context.Context, listID string) error {
	slog.DebugContext(ctx, "checking list exists", "list_id", listID)

	_, err := o.gateway.GetList(ctx, listID)
	if err == nil {
		return nil
	}

	var badRequest errors.BadRequest
	if stderrors.As(err, &badRequest) && badRequest.NotFound() {
		return errors.NewBadRequest(fmt.Sprintf("List ID:%s does not exist", listID), badRequest.StatusCode, badRequest.Body, err)
	}
	return err
}

// GetLists returns the list collection
func (o *subscriptionOrchestrator) GetLists(ctx context.Context, query model.ListsQuery) (_ *model.ListCollection, err error) {
	ctx, span := o.start(ctx, "get_lists", "")
	defer func() { end(span, err) }()

	return o.gateway.GetLists(ctx, query)
}

// Status looks the list up first, then the member
func (o *subscriptionOrchestrator) Status(ctx context.Context, listID, email string) (_ model.Status, err error) {
	ctx, span := o.start(ctx, "status", listID)
	defer func() { end(span, err) }()

	status, err := o.status(ctx, listID, email)
	if err == nil {
		span.SetAttributes(statusAttr(status.String()))
	}
	return status, err
}

func (o *subscriptionOrchestrator) status(ctx context.Context, listID, email string) (model.Status, error) {
	member, err := model.NewMember(email)
	if err != nil {
		return "", err
	}

	if err := o.listExists(ctx, listID); err != nil {
		return "", err
	}

	record, err := o.gateway.GetMember(ctx, listID, member.Identifier())
	if err != nil {
		var badRequest errors.BadRequest
		if stderrors.As(err, &badRequest) && badRequest.NotFound() {
			slog.DebugContext(ctx, "member not found on list",
				"list_id", listID,
				"email", log.RedactEmail(member.Email()),
			)
			return model.StatusNotFound, nil
		}
		return "", err
	}

	if record == nil || !record.Status.Reported() {
		got := ""
		if record != nil {
			got = string(record.Status)
		}
		return "", errors.NewDataIntegrity(fmt.Sprintf("member record for list %s has no recognized status: %q", listID, got))
	}

	slog.DebugContext(ctx, "member status resolved",
		"list_id", listID,
		"email", log.RedactEmail(member.Email()),
		"status", record.Status,
	)
	return record.Status, nil
}

// Check reports whether the address is subscribed
func (o *subscriptionOrchestrator) Check(ctx context.Context, listID, email string) (_ bool, err error) {
	ctx, span := o.start(ctx, "check", listID)
	defer func() { end(span, err) }()

	status, err := o.status(ctx, listID, email)
	if err != nil {
		return false, err
	}
	return status == model.StatusSubscribed, nil
}

// GetTags returns the tags of a member
func (o *subscriptionOrchestrator) GetTags(ctx context.Context, listID, email string) (_ *model.TagCollection, err error) {
	ctx, span := o.start(ctx, "get_tags", listID)
	defer func() { end(span, err) }()

	return o.getTags(ctx, listID, email)
}

func (o *subscriptionOrchestrator) getTags(ctx context.Context, listID, email string) (*model.TagCollection, error) {
	tags, err := o.gateway.GetTags(ctx, listID, email)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = &model.TagCollection{}
	}
	if tags.Tags == nil {
		tags.Tags = []model.Tag{}
	}
	return tags, nil
}
