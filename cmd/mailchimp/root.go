// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/mailchimp"
)

// app carries the root flags and the client built from them
type app struct {
	configPath string
	apiKey     string
	mock       bool

	client *mailchimp.Client
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "mailchimp",
		Short:         "Manage Mailchimp audience members",
		Long:          "Look up, subscribe, unsubscribe, archive, delete and tag members of a Mailchimp audience.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "Mailchimp API key (overrides MAILCHIMP_API_KEY)")
	cmd.PersistentFlags().BoolVar(&a.mock, "mock", false, "use the in-memory gateway with sample data")

	cmd.AddCommand(
		a.listsCommand(),
		a.listExistsCommand(),
		a.statusCommand(),
		a.checkCommand(),
		a.subscribeCommand(),
		a.memberCommand("unsubscribe", "Unsubscribe a subscribed address", a.unsubscribe),
		a.memberCommand("archive", "Archive a member", a.archive),
		a.memberCommand("delete", "Permanently delete an archived member", a.delete),
		a.tagsCommand(),
		a.apiCommand(),
		newVersionCommand(),
	)

	return cmd
}

// connect builds the client once the flags are parsed
func (a *app) connect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.apiKey != "" {
		cfg.APIKey = a.apiKey
	}
	if a.mock {
		cfg.MockMode = true
	}

	client, err := newClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
