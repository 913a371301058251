// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Name     string        `flag:"name" desc:"the name"`
		Notify   bool          `flag:"notify,n" desc:"notify the room"`
		Count    int           `flag:"count" desc:"number of items"`
		Timeout  time.Duration `flag:"timeout" desc:"request timeout"`
		Tags     []string      `flag:"tags" desc:"tag list"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--name", "alice",
		"-n",
		"--count", "42",
		"--timeout", "30s",
		"--tags", "a,b,c",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Name != "alice" {
		t.Errorf("Name = %q, want %q", p.Name, "alice")
	}
	if !p.Notify {
		t.Error("Notify = false, want true")
	}
	if p.Count != 42 {
		t.Errorf("Count = %d, want 42", p.Count)
	}
	if p.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", p.Timeout)
	}
	if strings.Join(p.Tags, "|") != "a|b|c" {
		t.Errorf("Tags = %v, want [a b c]", p.Tags)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Priority string        `flag:"priority" default:"message"`
		Notify   bool          `flag:"notify" default:"true"`
		Limit    int           `flag:"limit" default:"10"`
		Timeout  time.Duration `flag:"timeout" default:"5s"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Priority != "message" || !p.Notify || p.Limit != 10 || p.Timeout != 5*time.Second {
		t.Errorf("defaults = %+v", p)
	}
}

func TestBindFlags_InvalidDefault(t *testing.T) {
	type params struct {
		Limit int `flag:"limit" default:"ten"`
	}
	var p params
	err := BindFlags(&p, pflag.NewFlagSet("test", pflag.ContinueOnError))
	if err == nil || !strings.Contains(err.Error(), "--limit") {
		t.Errorf("BindFlags error = %v, want an error naming --limit", err)
	}
}

func TestBindFlags_UnsupportedType(t *testing.T) {
	type params struct {
		Ratio float32 `flag:"ratio"`
	}
	var p params
	if err := BindFlags(&p, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for unsupported field type")
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	type params struct{}
	if err := BindFlags(params{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for non-pointer params")
	}
}

func TestBindFlags_EmbeddedStructsAndBinders(t *testing.T) {
	type params struct {
		ConnectionConfig
		JSONOutput
		From string `flag:"from"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	for _, name := range []string{"config", "api-url", "token-file", "timeout", "verbose", "json", "from"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}

	if err := flagSet.Parse([]string{"--api-url", "http://localhost/v1", "--json", "-v"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.APIURL != "http://localhost/v1" {
		t.Errorf("APIURL = %q", p.APIURL)
	}
	if !p.OutputJSON || !p.Verbose {
		t.Errorf("OutputJSON = %v, Verbose = %v, want both true", p.OutputJSON, p.Verbose)
	}
}

func TestFlagsFromParams_PanicsOnInvalidParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	FlagsFromParams("bad", 42)
}
