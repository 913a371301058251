// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bureau-foundation/hipchat/cmd/hipchat/cli"
	"github.com/bureau-foundation/hipchat/hipchat"
)

// defaultSender is the "from" name when --from is not given. HipChat
// rejects senders longer than 15 characters.
const defaultSender = "hipchat-cli"

// MessageFlags are the delivery flags shared by every send command.
type MessageFlags struct {
	From     string `json:"from"     flag:"from"     desc:"sender name shown in the room" default:"hipchat-cli"`
	Notify   bool   `json:"notify"   flag:"notify"   desc:"notify room occupants"`
	Priority string `json:"priority" flag:"priority" desc:"message, warning, or alert" default:"message"`
}

func (f MessageFlags) options() (hipchat.MessageOptions, error) {
	priority, err := parsePriority(f.Priority)
	if err != nil {
		return hipchat.MessageOptions{}, err
	}
	return hipchat.MessageOptions{Notify: f.Notify, Priority: priority}, nil
}

func (f MessageFlags) sender() string {
	if f.From == "" {
		return defaultSender
	}
	return f.From
}

func parsePriority(name string) (hipchat.Priority, error) {
	switch strings.ToLower(name) {
	case "", "message", "green":
		return hipchat.PriorityMessage, nil
	case "warning", "yellow":
		return hipchat.PriorityWarning, nil
	case "alert", "red":
		return hipchat.PriorityAlert, nil
	}
	return "", fmt.Errorf("unknown priority %q (want message, warning, or alert)", name)
}

type sendParams struct {
	cli.ConnectionConfig
	MessageFlags
	HTML     bool `json:"html"     flag:"html"     desc:"send the message as HTML"`
	Markdown bool `json:"markdown" flag:"markdown" desc:"render the message from markdown to HTML"`
}

func sendCommand() *cli.Command {
	var params sendParams

	return &cli.Command{
		Name:    "send",
		Summary: "Send a message to a room",
		Description: `Send a message to a room. The message is plain text unless --html or
--markdown is given; markdown is rendered to HTML with syntax-highlighted
code blocks. A message of "-" is read from stdin.

"send table" and "send list" build HTML tables and lists from arguments.`,
		Usage: "hipchat send <room> <message> [--from <name>] [--notify] [--priority <p>] [--html | --markdown]",
		Examples: []cli.Example{
			{
				Description: "Post a warning",
				Command:     "hipchat send Ops 'disk 90% full' --priority warning",
			},
			{
				Description: "Post a release note written in markdown",
				Command:     "hipchat send Ops - --markdown < NOTES.md",
			},
		},
		Params: func() any { return &params },
		Subcommands: []*cli.Command{
			sendTableCommand(),
			sendListCommand(),
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 2, "hipchat send <room> <message>"); err != nil {
				return err
			}
			if params.HTML && params.Markdown {
				return fmt.Errorf("--html and --markdown are mutually exclusive")
			}
			options, err := params.options()
			if err != nil {
				return err
			}
			message, err := messageText(args[1])
			if err != nil {
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

			switch {
			case params.Markdown:
				return room.SendMarkdownMessage(ctx, params.sender(), message, options)
			case params.HTML:
				options.Format = hipchat.FormatHTML
			}
			return room.SendMessage(ctx, params.sender(), message, options)
		},
	}
}

type sendTableParams struct {
	cli.ConnectionConfig
	MessageFlags
	SkipHeader bool `json:"skip_header" flag:"skip-header" desc:"do not bold the first row"`
}

func sendTableCommand() *cli.Command {
	var params sendTableParams

	return &cli.Command{
		Name:    "table",
		Summary: "Send an HTML table",
		Description: `Send an HTML table. Each argument after <room> is one row of
comma-separated cells (CSV quoting applies). The first row is bold unless
--skip-header is given.`,
		Usage: "hipchat send table <room> <row>...",
		Examples: []cli.Example{
			{
				Command: `hipchat send table Ops "host,load" "web-1,0.4" "web-2,1.9"`,
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: hipchat send table <room> <row>...")
			}
			rows, err := parseRows(args[1:])
			if err != nil {
				return err
			}
			options, err := params.options()
			if err != nil {
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
			return room.SendTableMessage(ctx, params.sender(), rows, hipchat.TableOptions{
				MessageOptions: options,
				SkipHeader:     params.SkipHeader,
			})
		},
	}
}

type sendListParams struct {
	cli.ConnectionConfig
	MessageFlags
}

func sendListCommand() *cli.Command {
	var params sendListParams

	return &cli.Command{
		Name:    "list",
		Summary: "Send an HTML bulleted list",
		Usage:   "hipchat send list <room> <item>...",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: hipchat send list <room> <item>...")
			}
			options, err := params.options()
			if err != nil {
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
			return room.SendListMessage(ctx, params.sender(), args[1:], options)
		},
	}
}

// parseRows splits each argument into cells as one CSV record.
func parseRows(arguments []string) ([][]string, error) {
	rows := make([][]string, 0, len(arguments))
	for i, argument := range arguments {
		reader := csv.NewReader(strings.NewReader(argument))
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		cells, err := reader.Read()
		if err == io.EOF {
			cells = []string{""}
		} else if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// messageText returns argument, or all of stdin when argument is "-".
func messageText(argument string) (string, error) {
	if argument != "-" {
		return argument, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading message from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
