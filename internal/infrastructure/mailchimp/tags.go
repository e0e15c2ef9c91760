// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
)

// tagsRequest is the body of a member tag update
type tagsRequest struct {
	Tags []model.TagUpdate `json:"tags"`
}

func (c *Client) tagsPath(listID, email string) (string, error) {
	member, err := model.NewMember(email)
	if err != nil {
		return "", err
	}
	return memberPath(listID, member.Identifier()) + "/tags", nil
}

// GetTags retrieves the tags of a member
func (c *Client) GetTags(ctx context.Context, listID, email string) (*model.TagCollection, error) {
	path, err := c.tagsPath(listID, email)
	if err != nil {
		return nil, err
	}

	tags := model.TagCollection{Tags: []model.Tag{}}
	if err := c.callInto(ctx, model.MethodGet, path, nil, &tags); err != nil {
		return nil, err
	}
	if tags.Tags == nil {
		tags.Tags = []model.Tag{}
	}
	return &tags, nil
}

// AddTags marks the named tags active
func (c *Client) AddTags(ctx context.Context, listID, email string, tags []string) error {
	return c.updateTags(ctx, listID, email, tags, model.TagActive)
}

// RemoveTags marks the named tags inactive
func (c *Client) RemoveTags(ctx context.Context, listID, email string, tags []string) error {
	return c.updateTags(ctx, listID, email, tags, model.TagInactive)
}

func (c *Client) updateTags(ctx context.Context, listID, email string, tags []string, status model.TagStatus) error {
	path, err := c.tagsPath(listID, email)
	if err != nil {
		return err
	}

	req := tagsRequest{Tags: make([]model.TagUpdate, 0, len(tags))}
	for _, name := range tags {
		req.Tags = append(req.Tags, model.TagUpdate{Name: name, Status: status})
	}
	return c.callInto(ctx, model.MethodPost, path, req, nil)
}
