// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"context"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
)

func listPath(listID string) string {
	return "/lists/" + url.PathEscape(listID)
}

// GetList retrieves a single list
func (c *Client) GetList(ctx context.Context, listID string) (*model.List, error) {
	var list model.List
	if err := c.callInto(ctx, model.MethodGet, listPath(listID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetLists retrieves the list collection
func (c *Client) GetLists(ctx context.Context, q model.ListsQuery) (*model.ListCollection, error) {
	var lists model.ListCollection
	if err := c.callInto(ctx, model.MethodGet, "/lists", q, &lists); err != nil {
		return nil, err
	}
	return &lists, nil
}
