// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Command mailchimp runs subscription operations against a Mailchimp audience
// and prints the result as JSON.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/log"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/utils"
)

const gracefulShutdownSeconds = 5

func main() {
	log.InitStructureLogConfig()
	ctx := context.Background()

	otelShutdown, err := utils.SetupOTelSDK(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error setting up OpenTelemetry SDK", "error", err)
		os.Exit(1)
	}

	code := 0
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		slog.ErrorContext(ctx, "command failed", "error", err)
		code = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
	if err := otelShutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "error shutting down OpenTelemetry SDK", "error", err)
	}
	cancel()

	os.Exit(code)
}
