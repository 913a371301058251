// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bureau-foundation/hipchat/cmd/hipchat/cli"
	"github.com/bureau-foundation/hipchat/hipchat"
)

// exitNotFound is the exit code for a room or user that does not exist.
const exitNotFound = 2

// resolveRoom finds a room by numeric id, falling back to an exact name
// match. A numeric string that names no room id is tried as a name, so
// rooms called "2024" stay reachable.
func resolveRoom(ctx context.Context, client *hipchat.Client, target string) (*hipchat.Room, error) {
	if id, err := strconv.Atoi(target); err == nil {
		room, err := client.FindRoomByID(ctx, id)
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, hipchat.ErrNotFound) {
			return nil, err
		}
	}
	room, err := client.FindRoomByName(ctx, target)
	if errors.Is(err, hipchat.ErrNotFound) {
		return nil, notFound("room", target)
	}
	return room, err
}

// resolveUser is resolveRoom for users.
func resolveUser(ctx context.Context, client *hipchat.Client, target string) (*hipchat.User, error) {
	if id, err := strconv.Atoi(target); err == nil {
		user, err := client.FindUserByID(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, hipchat.ErrNotFound) {
			return nil, err
		}
	}
	user, err := client.FindUserByName(ctx, target)
	if errors.Is(err, hipchat.ErrNotFound) {
		return nil, notFound("user", target)
	}
	return user, err
}

// notFound reports a lookup miss on stderr and returns an ExitError so
// main exits without printing a second message.
func notFound(kind, target string) error {
	fmt.Fprintf(cli.Stderr, "no %s matching %q\n", kind, target)
	return &cli.ExitError{Code: exitNotFound}
}

// requireArgs checks the positional argument count.
func requireArgs(args []string, want int, usage string) error {
	if len(args) < want {
		return fmt.Errorf("usage: %s", usage)
	}
	if len(args) > want {
		return fmt.Errorf("unexpected argument: %s", args[want])
	}
	return nil
}

// formatTime renders a timestamp for text output, "-" when absent.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
