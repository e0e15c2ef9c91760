// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
)

// TagManager defines the interface for member tags
type TagManager interface {
	GetTags(ctx context.Context, listID, email string) (*model.TagCollection, error)

	// AddTags marks every named tag active in a single request
	AddTags(ctx context.Context, listID, email string, tags []string) error

	// RemoveTags marks every named tag inactive in a single request
	RemoveTags(ctx context.Context, listID, email string, tags []string) error
}
