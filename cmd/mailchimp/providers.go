// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/mailchimp"
)

// newClient picks the gateway implementation from the configuration
func newClient(ctx context.Context, cfg mailchimp.Config) (*mailchimp.Client, error) {
	if cfg.MockMode {
		slog.DebugContext(ctx, "initializing mock mailchimp gateway")
		return mailchimp.New(cfg.APIKey, mailchimp.WithGateway(mock.NewMockGatewayWithSampleData()))
	}

	slog.DebugContext(ctx, "initializing mailchimp gateway",
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout,
		"max_retries", cfg.MaxRetries,
	)
	return mailchimp.New(cfg.APIKey, mailchimp.WithConfig(cfg))
}
