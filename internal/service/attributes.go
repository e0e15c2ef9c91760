// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import "go.opentelemetry.io/otel/attribute"

func listIDAttr(listID string) attribute.KeyValue {
	return attribute.String("mailchimp.list_id", listID)
}

func statusAttr(status string) attribute.KeyValue {
	return attribute.String("mailchimp.member.status", status)
}
