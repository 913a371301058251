// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the hipchat command tree.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/hipchat/cmd/hipchat/cli"
)

// Root returns the top-level hipchat command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "hipchat",
		Summary: "HipChat v1 REST client",
		Description: `hipchat talks to the HipChat v1 REST API: list and manage rooms,
look up users, and post messages.

The API token comes from --token-file, $HIPCHAT_TOKEN, or the
token_file entry of the config file named by --config or
$HIPCHAT_CONFIG, in that order.`,
		Subcommands: []*cli.Command{
			roomCommand(),
			userCommand(),
			sendCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List rooms using a token read from a file",
				Command:     "hipchat room list --token-file ~/.config/hipchat/token",
			},
			{
				Description: "Post an alert to a room",
				Command:     "hipchat send Ops 'deploy failed' --priority alert --notify",
			},
		},
	}
}

// commandContext is cancelled by SIGINT or SIGTERM. Per-request
// deadlines come from the client's configured timeout.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
