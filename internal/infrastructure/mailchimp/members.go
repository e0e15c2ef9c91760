// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"context"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
)

func memberPath(listID, subscriberHash string) string {
	return listPath(listID) + "/members/" + url.PathEscape(subscriberHash)
}

// GetMember retrieves a member by subscriber hash
func (c *Client) GetMember(ctx context.Context, listID, subscriberHash string) (*model.MemberRecord, error) {
	var record model.MemberRecord
	if err := c.callInto(ctx, model.MethodGet, memberPath(listID, subscriberHash), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// AddUpdate upserts a member with the confirm flag applied to both status fields
func (c *Client) AddUpdate(ctx context.Context, listID, email string, mergeFields map[string]any, confirm bool) (*model.MemberRecord, error) {
	member, err := model.NewMember(email)
	if err != nil {
		return nil, err
	}
	member = member.WithConfirm(confirm)
	if len(mergeFields) > 0 {
		member = member.WithMergeFields(mergeFields)
	}
	return c.put(ctx, memberPath(listID, member.Identifier()), member.Parameters())
}

// AddUpdateMember upserts a prepared member payload
func (c *Client) AddUpdateMember(ctx context.Context, listID string, member model.Member) (*model.MemberRecord, error) {
	return c.put(ctx, memberPath(listID, member.Identifier()), member.Parameters())
}

// AddUpdateMemberSkipMergeValidation upserts a member without enforcing
// required merge fields
func (c *Client) AddUpdateMemberSkipMergeValidation(ctx context.Context, listID string, member model.Member) (*model.MemberRecord, error) {
	return c.put(ctx, memberPath(listID, member.Identifier())+"?skip_merge_validation=true", member.Parameters())
}

// Unsubscribe sets both status fields to unsubscribed
func (c *Client) Unsubscribe(ctx context.Context, listID, email string) (*model.MemberRecord, error) {
	member, err := model.NewMember(email)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"email_address": member.Email(),
		"status_if_new": string(model.StatusUnsubscribed),
		"status":        string(model.StatusUnsubscribed),
	}
	return c.put(ctx, memberPath(listID, member.Identifier()), payload)
}

// Archive soft-removes a member
func (c *Client) Archive(ctx context.Context, listID, email string) error {
	member, err := model.NewMember(email)
	if err != nil {
		return err
	}
	payload := map[string]any{"email_address": member.Email()}
	return c.callInto(ctx, model.MethodDelete, memberPath(listID, member.Identifier()), payload, nil)
}

// Delete permanently erases an archived member
func (c *Client) Delete(ctx context.Context, listID, email string) error {
	member, err := model.NewMember(email)
	if err != nil {
		return err
	}
	return c.callInto(ctx, model.MethodPost, memberPath(listID, member.Identifier())+"/actions/delete-permanent", nil, nil)
}

func (c *Client) put(ctx context.Context, path string, payload map[string]any) (*model.MemberRecord, error) {
	var record model.MemberRecord
	if err := c.callInto(ctx, model.MethodPut, path, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
