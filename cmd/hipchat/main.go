// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// hipchat is the command-line client for the HipChat v1 REST API.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/hipchat/cmd/hipchat/commands"
)

func main() {
	if err := run(); err != nil {
		// Lookups that miss report on stderr themselves and return an
		// ExitError; don't print a second line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
