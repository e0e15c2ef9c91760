// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
)

// MemberWriter defines the interface for member mutations
type MemberWriter interface {
	// AddUpdate upserts a member by address. confirm selects pending (double
	// opt-in) or subscribed for both status and status_if_new.
	// Empty mergeFields are left out of the payload.
	AddUpdate(ctx context.Context, listID, email string, mergeFields map[string]any, confirm bool) (*model.MemberRecord, error)

	// AddUpdateMember upserts a prepared member payload
	AddUpdateMember(ctx context.Context, listID string, member model.Member) (*model.MemberRecord, error)

	// AddUpdateMemberSkipMergeValidation upserts a member without enforcing
	// required merge fields
	AddUpdateMemberSkipMergeValidation(ctx context.Context, listID string, member model.Member) (*model.MemberRecord, error)

	// Unsubscribe sets status and status_if_new to unsubscribed
	Unsubscribe(ctx context.Context, listID, email string) (*model.MemberRecord, error)

	// Archive soft-removes a member. It can be reversed by a later upsert.
	Archive(ctx context.Context, listID, email string) error

	// Delete permanently erases a member. The provider refuses to delete a
	// member that was not archived first.
	Delete(ctx context.Context, listID, email string) error
}
