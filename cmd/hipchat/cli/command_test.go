// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "hipchat",
		Subcommands: []*Command{
			{Name: "room", Run: func(args []string) error { called = "room"; return nil }},
			{Name: "user", Run: func(args []string) error { called = "user"; return nil }},
		},
	}

	if err := root.Execute([]string{"user"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "user" {
		t.Errorf("dispatched to %q, want %q", called, "user")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "hipchat",
		Subcommands: []*Command{
			{
				Name: "room",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(args []string) error {
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"room", "show", "Ops"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "Ops" {
		t.Errorf("args = %v, want [Ops]", receivedArgs)
	}
}

func TestCommand_Execute_RunWithSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	send := &Command{
		Name: "send",
		Run: func(args []string) error {
			called = "send"
			receivedArgs = args
			return nil
		},
		Subcommands: []*Command{
			{Name: "table", Run: func(args []string) error { called = "table"; return nil }},
		},
	}
	root := &Command{Name: "hipchat", Subcommands: []*Command{send}}

	if err := root.Execute([]string{"send", "table", "Ops", "a,b"}); err != nil {
		t.Fatalf("Execute(table) error: %v", err)
	}
	if called != "table" {
		t.Errorf("dispatched to %q, want table", called)
	}

	if err := root.Execute([]string{"send", "Ops", "hello"}); err != nil {
		t.Fatalf("Execute(send) error: %v", err)
	}
	if called != "send" {
		t.Errorf("dispatched to %q, want send", called)
	}
	if len(receivedArgs) != 2 || receivedArgs[0] != "Ops" || receivedArgs[1] != "hello" {
		t.Errorf("args = %v, want [Ops hello]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var from string
	var receivedArgs []string

	command := &Command{
		Name: "send",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("send", pflag.ContinueOnError)
			flagSet.StringVar(&from, "from", "", "sender")
			return flagSet
		},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"--from", "Build Bot", "Ops", "done"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if from != "Build Bot" {
		t.Errorf("from = %q, want %q", from, "Build Bot")
	}
	if len(receivedArgs) != 2 {
		t.Errorf("args = %v, want 2 positional args", receivedArgs)
	}
}

func TestCommand_Execute_Params(t *testing.T) {
	type params struct {
		Owner   string `flag:"owner" desc:"owner"`
		Private bool   `flag:"private" desc:"private"`
	}
	var p params
	var ran bool

	command := &Command{
		Name:   "create",
		Params: func() any { return &p },
		Run: func(args []string) error {
			ran = true
			return nil
		},
	}

	if err := command.Execute([]string{"--owner", "alice", "--private", "Deploys"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !ran {
		t.Fatal("Run was not called")
	}
	if p.Owner != "alice" || !p.Private {
		t.Errorf("params = %+v, want owner alice, private", p)
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "hipchat",
		Subcommands: []*Command{
			{Name: "room", Run: func(args []string) error { return nil }},
			{Name: "user", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"rom"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "room"`) {
		t.Errorf("error = %q, want a suggestion for room", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	var notify bool
	command := &Command{
		Name: "send",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("send", pflag.ContinueOnError)
			flagSet.BoolVar(&notify, "notify", false, "notify")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--notfy"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --notify") {
		t.Errorf("error = %q, want a suggestion for --notify", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var stderr bytes.Buffer
	saved := Stderr
	Stderr = &stderr
	t.Cleanup(func() { Stderr = saved })

	root := &Command{
		Name:        "hipchat",
		Subcommands: []*Command{{Name: "room", Summary: "Manage rooms"}},
	}

	err := root.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Fatalf("Execute(nil) error = %v, want subcommand required", err)
	}
	if !strings.Contains(stderr.String(), "Manage rooms") {
		t.Errorf("help output missing subcommand summary:\n%s", stderr.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	parent := &Command{Name: "hipchat"}
	command := &Command{
		Name:        "topic",
		Description: "Change a room's topic.",
		Usage:       "hipchat room topic <room> <topic>",
		Examples: []Example{
			{Description: "Announce a freeze", Command: "hipchat room topic Ops 'code freeze'"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("topic", pflag.ContinueOnError)
			flagSet.String("from", "", "sender shown in the room")
			return flagSet
		},
		parent: parent,
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Change a room's topic.",
		"hipchat room topic <room> <topic>",
		"--from",
		"# Announce a freeze",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var stderr bytes.Buffer
	saved := Stderr
	Stderr = &stderr
	t.Cleanup(func() { Stderr = saved })

	ran := false
	command := &Command{
		Name:    "list",
		Summary: "List rooms",
		Run:     func(args []string) error { ran = true; return nil },
	}
	if err := command.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	if ran {
		t.Error("Run was called for --help")
	}
	if !strings.Contains(stderr.String(), "List rooms") {
		t.Errorf("help output = %q", stderr.String())
	}
}
