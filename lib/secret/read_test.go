// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFromPath(t *testing.T) {
	directory := t.TempDir()

	t.Run("trims whitespace", func(t *testing.T) {
		path := filepath.Join(directory, "token")
		if err := os.WriteFile(path, []byte("  abc123\n"), 0600); err != nil {
			t.Fatalf("writing token file: %v", err)
		}
		buffer, err := ReadFromPath(path)
		if err != nil {
			t.Fatalf("ReadFromPath failed: %v", err)
		}
		defer buffer.Close()
		if buffer.String() != "abc123" {
			t.Errorf("expected trimmed token, got %q", buffer.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadFromPath(filepath.Join(directory, "absent")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("whitespace only", func(t *testing.T) {
		path := filepath.Join(directory, "blank")
		if err := os.WriteFile(path, []byte(" \n\t\n"), 0600); err != nil {
			t.Fatalf("writing token file: %v", err)
		}
		if _, err := ReadFromPath(path); err == nil {
			t.Fatal("expected error for whitespace-only file")
		}
	})
}
