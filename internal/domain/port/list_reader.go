// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package port defines the interfaces for external dependencies and adapters.
package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
)

// ListReader defines the interface for reading audience lists
type ListReader interface {
	// GetList retrieves a single list.
	// A missing list fails with a BadRequest whose status is 404.
	GetList(ctx context.Context, listID string) (*model.List, error)

	// GetLists retrieves the list collection, paged and filtered by query
	GetLists(ctx context.Context, query model.ListsQuery) (*model.ListCollection, error)
}
