// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buffer bytes.Buffer
	saved := Stdout
	Stdout = &buffer
	t.Cleanup(func() { Stdout = saved })
	return &buffer
}

func TestEmitJSON(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		stdout := captureStdout(t)
		var output JSONOutput
		done, err := output.EmitJSON(map[string]int{"room_id": 7})
		if done || err != nil {
			t.Fatalf("EmitJSON = (%v, %v), want (false, nil)", done, err)
		}
		if stdout.Len() != 0 {
			t.Errorf("wrote %q with --json unset", stdout.String())
		}
	})

	t.Run("enabled", func(t *testing.T) {
		stdout := captureStdout(t)
		output := JSONOutput{OutputJSON: true}
		done, err := output.EmitJSON(map[string]int{"room_id": 7})
		if !done || err != nil {
			t.Fatalf("EmitJSON = (%v, %v), want (true, nil)", done, err)
		}
		if got := stdout.String(); got != "{\n  \"room_id\": 7\n}\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("nil slice", func(t *testing.T) {
		stdout := captureStdout(t)
		output := JSONOutput{OutputJSON: true}
		var rooms []string
		if _, err := output.EmitJSON(rooms); err != nil {
			t.Fatalf("EmitJSON: %v", err)
		}
		if got := strings.TrimSpace(stdout.String()); got != "[]" {
			t.Errorf("output = %q, want []", got)
		}
	})
}
