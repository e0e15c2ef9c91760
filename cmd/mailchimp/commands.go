// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/mailchimp"
)

type memberResult struct {
	ListID     string `json:"list_id"`
	Email      string `json:"email"`
	Action     string `json:"action,omitempty"`
	Status     string `json:"status,omitempty"`
	Subscribed *bool  `json:"subscribed,omitempty"`
}

func (a *app) listsCommand() *cobra.Command {
	var query mailchimp.ListsQuery

	cmd := &cobra.Command{
		Use:     "lists",
		Short:   "List the audiences of the account",
		Args:    cobra.NoArgs,
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lists, err := a.client.GetLists(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), lists)
		},
	}

	cmd.Flags().IntVar(&query.Count, "count", 0, "number of lists to return")
	cmd.Flags().IntVar(&query.Offset, "offset", 0, "number of lists to skip")
	cmd.Flags().StringVar(&query.Fields, "fields", "", "comma separated fields to include")
	cmd.Flags().StringVar(&query.ExcludeFields, "exclude-fields", "", "comma separated fields to exclude")

	return cmd
}

func (a *app) listExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list-exists <list-id>",
		Short:   "Report whether a list exists",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			exists := true
			if err := a.client.ListExists(cmd.Context(), args[0]); err != nil {
				if errors.StatusCode(err) != http.StatusNotFound {
					return err
				}
				exists = false
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"list_id": args[0], "exists": exists})
		},
	}
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status <list-id> <email>",
		Short:   "Print the subscription status of an address",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.client.Status(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), memberResult{ListID: args[0], Email: args[1], Status: status.String()})
		},
	}
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "check <list-id> <email>",
		Short:   "Report whether an address is subscribed",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			subscribed, err := a.client.Check(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), memberResult{ListID: args[0], Email: args[1], Subscribed: &subscribed})
		},
	}
}

func (a *app) subscribeCommand() *cobra.Command {
	var (
		merge   map[string]string
		confirm bool
	)

	cmd := &cobra.Command{
		Use:     "subscribe <list-id> <email>",
		Short:   "Subscribe an address, creating the member if needed, and print its resulting status",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			var mergeFields map[string]any
			if len(merge) > 0 {
				mergeFields = make(map[string]any, len(merge))
				for k, v := range merge {
					mergeFields[k] = v
				}
			}
			if err := a.client.Subscribe(cmd.Context(), args[0], args[1], mergeFields, confirm); err != nil {
				return err
			}
			status, err := a.client.Status(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), memberResult{ListID: args[0], Email: args[1], Action: "subscribe", Status: status.String()})
		},
	}

	cmd.Flags().StringToStringVar(&merge, "merge", nil, "merge field as KEY=VALUE, repeatable")
	cmd.Flags().BoolVar(&confirm, "confirm", true, "require double opt-in for new addresses; --confirm=false subscribes immediately")

	return cmd
}

// memberCommand builds a command running one write on <list-id> <email>
func (a *app) memberCommand(use, short string, run func(ctx context.Context, listID, email string) error) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <list-id> <email>",
		Short:   short,
		Args:    cobra.ExactArgs(2),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), memberResult{ListID: args[0], Email: args[1], Action: use})
		},
	}
}

func (a *app) unsubscribe(ctx context.Context, listID, email string) error {
	return a.client.Unsubscribe(ctx, listID, email)
}

func (a *app) archive(ctx context.Context, listID, email string) error {
	return a.client.Archive(ctx, listID, email)
}

func (a *app) delete(ctx context.Context, listID, email string) error {
	return a.client.Delete(ctx, listID, email)
}

func (a *app) tagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Read and change member tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "get <list-id> <email>",
			Short:   "Print the tags of a member",
			Args:    cobra.ExactArgs(2),
			PreRunE: a.connect,
			RunE: func(cmd *cobra.Command, args []string) error {
				tags, err := a.client.GetTags(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tags)
			},
		},
		a.tagWriteCommand("add", "Attach tags to a member", a.addTags),
		a.tagWriteCommand("remove", "Detach tags from a member", a.removeTags),
		a.memberCommand("remove-all", "Detach every tag from a member", a.removeAllTags),
	)

	return cmd
}

func (a *app) removeAllTags(ctx context.Context, listID, email string) error {
	return a.client.RemoveAllTags(ctx, listID, email)
}

func (a *app) addTags(ctx context.Context, listID, email string, tags []any) error {
	return a.client.AddTags(ctx, listID, email, tags)
}

func (a *app) removeTags(ctx context.Context, listID, email string, tags []any) error {
	return a.client.RemoveTags(ctx, listID, email, tags)
}

// tagWriteCommand builds a command passing the trailing arguments as tag names
func (a *app) tagWriteCommand(use, short string, run func(ctx context.Context, listID, email string, tags []any) error) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <list-id> <email> <tag>...",
		Short:   short,
		Args:    cobra.MinimumNArgs(3),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := make([]any, 0, len(args)-2)
			for _, name := range args[2:] {
				tags = append(tags, name)
			}
			if err := run(cmd.Context(), args[0], args[1], tags); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"list_id": args[0],
				"email":   args[1],
				"action":  "tags " + use,
				"tags":    args[2:],
			})
		},
	}
}

func (a *app) apiCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:     "api <method> <endpoint>",
		Short:   "Send a raw request to any endpoint",
		Long:    "Send a raw request to any endpoint. GET and DELETE send --data as query parameters, the other methods as a JSON body.",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := mailchimp.ParseMethod(args[0])
			if err != nil {
				return err
			}

			var payload any
			if data != "" {
				if err := json.Unmarshal([]byte(data), &payload); err != nil {
					return errors.NewInvalidInput(fmt.Sprintf("invalid --data: %s", err.Error()), err)
				}
			}

			out, err := a.client.API(cmd.Context(), method, args[1], payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "request payload as a JSON object")

	return cmd
}
