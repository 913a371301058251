// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/bureau-foundation/hipchat/cmd/hipchat/cli"
	"github.com/bureau-foundation/hipchat/hipchat"
)

func roomCommand() *cli.Command {
	return &cli.Command{
		Name:    "room",
		Summary: "List, inspect, and manage rooms",
		Description: `Manage HipChat rooms.

<room> is a numeric room id or an exact room name.`,
		Subcommands: []*cli.Command{
			roomListCommand(),
			roomShowCommand(),
			roomCreateCommand(),
			roomDeleteCommand(),
			roomTopicCommand(),
			roomMembersCommand(),
			roomParticipantsCommand(),
		},
	}
}

type roomListParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
	IncludeArchived bool `json:"include_archived" flag:"include-archived" desc:"include archived rooms"`
}

func roomListCommand() *cli.Command {
	var params roomListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List rooms",
		Usage:   "hipchat room list [--include-archived] [--json]",
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

			rooms, err := connection.Client.ListRooms(ctx)
			if err != nil {
				return err
			}

			var records []hipchat.RoomRecord
			for _, room := range rooms {
				if room.IsArchived() && !params.IncludeArchived {
					continue
				}
				records = append(records, room.Record())
			}

			if done, err := params.EmitJSON(records); done {
				return err
			}

			writer := tabwriter.NewWriter(cli.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tPRIVATE\tLAST ACTIVE\tTOPIC")
			for _, record := range records {
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
					record.ID, record.Name, yesNo(bool(record.IsPrivate)),
					formatTime(record.LastActive.Time()), record.Topic)
			}
			return writer.Flush()
		},
	}
}

type roomTargetParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
}

func roomShowCommand() *cli.Command {
	var params roomTargetParams

	return &cli.Command{
		Name:        "show",
		Summary:     "Show a room's full record",
		Description: "Fetch a room's detail record (rooms/show), including membership.",
		Usage:       "hipchat room show <room> [--json]",
		Params:      func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, "hipchat room show <room>"); err != nil {
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
			if err := room.Refresh(ctx); err != nil {
				return err
			}
			record := room.Record()

			if done, err := params.EmitJSON(record); done {
				return err
			}

			owner := "-"
			if user, err := room.Owner(ctx); err == nil {
				owner = user.Name()
			}
			guestAccess := record.GuestAccessURL
			if guestAccess == "" {
				guestAccess = "-"
			}

			writer := tabwriter.NewWriter(cli.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(writer, "ID:\t%d\n", record.ID)
			fmt.Fprintf(writer, "Name:\t%s\n", record.Name)
			fmt.Fprintf(writer, "Topic:\t%s\n", record.Topic)
			fmt.Fprintf(writer, "Owner:\t%s\n", owner)
			fmt.Fprintf(writer, "Private:\t%s\n", yesNo(bool(record.IsPrivate)))
			fmt.Fprintf(writer, "Archived:\t%s\n", yesNo(bool(record.IsArchived)))
			fmt.Fprintf(writer, "Created:\t%s\n", formatTime(record.Created.Time()))
			fmt.Fprintf(writer, "Last active:\t%s\n", formatTime(record.LastActive.Time()))
			fmt.Fprintf(writer, "XMPP JID:\t%s\n", record.XMPPJID)
			fmt.Fprintf(writer, "Guest access:\t%s\n", guestAccess)
			fmt.Fprintf(writer, "Members:\t%d\n", len(record.MemberUserIDs))
			fmt.Fprintf(writer, "Participants:\t%d\n", len(record.Participants))
			return writer.Flush()
		},
	}
}

type roomCreateParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
	Owner       string `json:"owner"        flag:"owner"        desc:"owner user id or name (required)"`
	Private     bool   `json:"private"      flag:"private"      desc:"create a private room"`
	Topic       string `json:"topic"        flag:"topic"        desc:"initial room topic"`
	GuestAccess bool   `json:"guest_access" flag:"guest-access" desc:"enable guest access"`
}

func roomCreateCommand() *cli.Command {
	var params roomCreateParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a room",
		Usage:   "hipchat room create <name> --owner <user> [--private] [--topic <topic>] [--guest-access]",
		Examples: []cli.Example{
			{
				Description: "Create a private room owned by user 12",
				Command:     "hipchat room create Deploys --owner 12 --private --topic 'release train'",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, "hipchat room create <name> --owner <user>"); err != nil {
				return err
			}
			if params.Owner == "" {
				return fmt.Errorf("--owner is required")
			}

			ctx, cancel := commandContext()
			defer cancel()

			connection, err := params.Connect()
			if err != nil {
				return err
			}
			defer connection.Close()

			owner, err := resolveUser(ctx, connection.Client, params.Owner)
			if err != nil {
				return err
			}

			room, err := connection.Client.CreateRoom(ctx, hipchat.CreateRoomRequest{
				Name:        args[0],
				Owner:       owner,
				Private:     params.Private,
				Topic:       params.Topic,
				GuestAccess: params.GuestAccess,
			})
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(room.Record()); done {
				return err
			}
			fmt.Fprintf(cli.Stdout, "created room %d: %s\n", room.ID(), room.Name())
			return nil
		},
	}
}

// connectionParams is for commands whose only flags are the connection
// flags.
type connectionParams struct {
	cli.ConnectionConfig
}

func roomDeleteCommand() *cli.Command {
	var params connectionParams

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a room",
		Usage:   "hipchat room delete <room>",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, "hipchat room delete <room>"); err != nil {
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
			if err := room.Delete(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cli.Stdout, "deleted room %d: %s\n", room.ID(), room.Name())
			return nil
		},
	}
}

func roomTopicCommand() *cli.Command {
	var params connectionParams

	return &cli.Command{
		Name:    "topic",
		Summary: "Change a room's topic",
		Usage:   "hipchat room topic <room> <topic>",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 2, "hipchat room topic <room> <topic>"); err != nil {
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
			return room.ChangeTopic(ctx, args[1])
		},
	}
}

func roomMembersCommand() *cli.Command {
	var params roomTargetParams

	return &cli.Command{
		Name:    "members",
		Summary: "List a room's members",
		Description: `List the users who may join a room. For a public room that is every
active user; for a private room, the room's member list.`,
		Usage:  "hipchat room members <room> [--json]",
		Params: func() any { return &params },
		Run: func(args []string) error {
			return runRoomUsers(args, params, "members", (*hipchat.Room).Members)
		},
	}
}

func roomParticipantsCommand() *cli.Command {
	var params roomTargetParams

	return &cli.Command{
		Name:    "participants",
		Summary: "List users currently in a room",
		Usage:   "hipchat room participants <room> [--json]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			return runRoomUsers(args, params, "participants", (*hipchat.Room).Participants)
		},
	}
}
