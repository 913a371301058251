// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/bureau-foundation/hipchat/cmd/hipchat/cli"
	"github.com/bureau-foundation/hipchat/hipchat"
)

func userCommand() *cli.Command {
	return &cli.Command{
		Name:    "user",
		Summary: "List and inspect users",
		Description: `Look up HipChat users.

<user> is a numeric user id or an exact display name.`,
		Subcommands: []*cli.Command{
			userListCommand(),
			userShowCommand(),
		},
	}
}

type userListParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
	IncludeDeleted bool `json:"include_deleted" flag:"include-deleted" desc:"include deleted users"`
}

func userListCommand() *cli.Command {
	var params userListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List users",
		Usage:   "hipchat user list [--include-deleted] [--json]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			ctx, cancel := commandContext()
			defer cancel()

			connection, err := params.Connect()
			if err != nil {
				return err
			}
			defer connection.Close()

			users, err := connection.Client.ListUsers(ctx)
			if err != nil {
				return err
			}

			var selected []*hipchat.User
			for _, user := range users {
				if user.IsDeleted() && !params.IncludeDeleted {
					continue
				}
				selected = append(selected, user)
			}
			return writeUsers(params.JSONOutput, selected)
		},
	}
}

type userShowParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
}

func userShowCommand() *cli.Command {
	var params userShowParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show a user's record",
		Usage:   "hipchat user show <user> [--json]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, "hipchat user show <user>"); err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			connection, err := params.Connect()
			if err != nil {
				return err
			}
			defer connection.Close()

			user, err := resolveUser(ctx, connection.Client, args[0])
			if err != nil {
				return err
			}
			record := user.Record()

			if done, err := params.EmitJSON(record); done {
				return err
			}

			writer := tabwriter.NewWriter(cli.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(writer, "ID:\t%d\n", record.ID)
			fmt.Fprintf(writer, "Name:\t%s\n", record.Name)
			fmt.Fprintf(writer, "Mention:\t@%s\n", record.MentionName)
			fmt.Fprintf(writer, "Email:\t%s\n", record.Email)
			fmt.Fprintf(writer, "Title:\t%s\n", record.Title)
			fmt.Fprintf(writer, "Status:\t%s\n", record.Status)
			if record.StatusMessage != "" {
				fmt.Fprintf(writer, "Status message:\t%s\n", record.StatusMessage)
			}
			fmt.Fprintf(writer, "Group admin:\t%s\n", yesNo(bool(record.IsGroupAdmin)))
			fmt.Fprintf(writer, "Deleted:\t%s\n", yesNo(bool(record.IsDeleted)))
			fmt.Fprintf(writer, "Created:\t%s\n", formatTime(user.Created()))
			fmt.Fprintf(writer, "Last active:\t%s\n", formatTime(user.LastActive()))
			return writer.Flush()
		},
	}
}

// runRoomUsers implements "room members" and "room participants", which
// differ only in which Room method produces the list.
func runRoomUsers(args []string, params roomTargetParams, what string, list func(*hipchat.Room, context.Context) ([]*hipchat.User, error)) error {
	if err := requireArgs(args, 1, "hipchat room "+what+" <room>"); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	connection, err := params.Connect()
	if err != nil {
		return err
	}
	defer connection.Close()

	room, err := resolveRoom(ctx, connection.Client, args[0])
	if err != nil {
		return err
	}
	users, err := list(room, ctx)
	if err != nil {
		return err
	}
	return writeUsers(params.JSONOutput, users)
}

func writeUsers(output cli.JSONOutput, users []*hipchat.User) error {
	records := make([]hipchat.UserRecord, len(users))
	for i, user := range users {
		records[i] = user.Record()
	}
	if done, err := output.EmitJSON(records); done {
		return err
	}

	writer := tabwriter.NewWriter(cli.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tMENTION\tEMAIL\tSTATUS")
	for _, record := range records {
		fmt.Fprintf(writer, "%d\t%s\t@%s\t%s\t%s\n",
			record.ID, record.Name, record.MentionName, record.Email, record.Status)
	}
	return writer.Flush()
}
