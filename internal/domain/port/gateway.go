// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
)

// Gateway issues authenticated calls to the provider and classifies every
// outcome into a decoded body or a pkg/errors value
type Gateway interface {
	ListReader
	MemberReader
	MemberWriter
	TagManager

	// Call issues exactly one request. For get and delete the payload is sent
	// as query parameters, otherwise as a JSON body. A nil payload sends
	// neither. Success bodies that are not a JSON object decode to an empty map.
	Call(ctx context.Context, method model.Method, path string, payload any) (map[string]any, error)

	// ResponseCode returns the status of the most recent response, or 0
	// before the first response
	ResponseCode() int

	// ResponseCodeNotFound reports whether the most recent response was a 404
	ResponseCodeNotFound() bool
}
