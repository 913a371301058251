// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the hipchat CLI.
//
// The central type is [Command]: a named command with optional nested
// [Command.Subcommands], flags declared either as a [pflag.FlagSet]
// factory or as a tagged params struct (see [BindFlags]), and a Run
// function. [Command.Execute] handles dispatch, flag parsing, help
// output, and edit-distance suggestions for mistyped commands and
// flags.
//
// [ConnectionConfig] is embedded by every command that talks to the
// API. It contributes --config, --api-url, --token-file, --timeout, and
// --verbose, and [ConnectionConfig.Connect] turns them into a ready
// [hipchat.Client].
//
// Command output goes to [Stdout]; [JSONOutput] adds a --json flag.
package cli
