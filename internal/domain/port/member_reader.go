// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
)

// MemberReader defines the interface for reading list members
type MemberReader interface {
	// GetMember retrieves a member by subscriber hash.
	// An unknown member fails with a BadRequest whose status is 404.
	GetMember(ctx context.Context, listID, subscriberHash string) (*model.MemberRecord, error)
}
